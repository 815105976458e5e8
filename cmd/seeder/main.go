package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/finsight/newsintel"
	"github.com/finsight/newsintel/core"
)

type seedArticle struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
}

var samples = []seedArticle{
	{
		Title:   "RBI keeps repo rate unchanged at 6.5 percent",
		Content: "The Reserve Bank of India held the benchmark repo rate steady for a seventh consecutive meeting, citing sticky food inflation. Governor flagged that liquidity conditions remain tight and that the stance stays focused on withdrawal of accommodation.",
		Source:  "seed-corpus",
	},
	{
		Title:   "HDFC Bank reports 18 percent rise in quarterly net profit",
		Content: "HDFC Bank posted a net profit of 165 billion rupees for the quarter, helped by healthy loan growth and stable asset quality. Net interest margin held at 3.4 percent while gross NPAs stayed below 1.3 percent.",
		Source:  "seed-corpus",
	},
	{
		Title:   "SEBI tightens disclosure norms for foreign portfolio investors",
		Content: "The market regulator ordered granular ownership disclosures from foreign funds holding concentrated positions in single corporate groups. Custodian banks said compliance costs will rise but welcomed the clarity on timelines.",
		Source:  "seed-corpus",
	},
	{
		Title:   "Tata Motors unveils new electric SUV platform",
		Content: "Tata Motors revealed a dedicated electric vehicle architecture expected to underpin four models by 2027. The company reiterated its target of EVs making up a quarter of its passenger vehicle sales.",
		Source:  "seed-corpus",
	},
	{
		Title:   "Sun Pharma receives US FDA approval for generic oncology drug",
		Content: "Sun Pharmaceutical won approval to market a generic version of a widely prescribed cancer treatment in the United States. Analysts estimate peak sales of 120 million dollars within three years.",
		Source:  "seed-corpus",
	},
	{
		Title:   "Infosys trims revenue guidance as clients defer discretionary spend",
		Content: "Infosys lowered its full-year revenue growth forecast to 1-2 percent in constant currency, blaming delayed decision making in financial services and retail verticals. The stock fell 4 percent in early trade.",
		Source:  "seed-corpus",
	},
	{
		Title:   "Steel ministry weighs safeguard duty on cheap imports",
		Content: "The government is examining a safeguard duty on flat steel products after domestic mills complained of a surge in low-priced imports. Auto and construction firms warned the move would raise input costs.",
		Source:  "seed-corpus",
	},
	{
		Title:   "Zomato swings to profit on food delivery margin gains",
		Content: "The food delivery platform reported its fourth straight profitable quarter as take rates improved and quick-commerce losses narrowed. Management guided for continued margin expansion through the fiscal year.",
		Source:  "seed-corpus",
	},
	{
		Title:   "ICICI Bank raises deposit rates amid tightening liquidity",
		Content: "ICICI Bank lifted rates on retail term deposits by up to 25 basis points across tenors, following peers in a scramble for funds. Bankers expect deposit competition to stay intense into the festive season.",
		Source:  "seed-corpus",
	},
	{
		Title:   "Monsoon deficit raises concern for rural demand recovery",
		Content: "Cumulative rainfall is running 8 percent below the long-period average, clouding the outlook for kharif sowing and rural consumption. FMCG and two-wheeler makers are watching reservoir levels closely.",
		Source:  "seed-corpus",
	},
	{
		Title:   "Adani Ports handles record monthly cargo volume",
		Content: "Adani Ports moved 38 million tonnes of cargo in the month, a 12 percent rise year on year, driven by container traffic at Mundra. The company maintained its full-year volume guidance.",
		Source:  "seed-corpus",
	},
	{
		Title:   "IRDAI proposes higher solvency headroom for health insurers",
		Content: "The insurance regulator floated draft rules requiring standalone health insurers to hold additional solvency buffers against pandemic-scale claim shocks. Industry bodies have four weeks to respond.",
		Source:  "seed-corpus",
	},
}

var (
	dbPath       = flag.String("db", "./news_db", "path to the article database")
	seedFileName = flag.String("src", "", "JSON file of seed articles")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func loadSeedFile(filename string) ([]seedArticle, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var articles []seedArticle
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

func toArticles(seeds []seedArticle) []*core.Article {
	articles := make([]*core.Article, len(seeds))
	for i, seed := range seeds {
		timestamp, err := time.Parse(time.RFC3339, seed.Timestamp)
		if err != nil {
			timestamp = time.Now().UTC()
		}
		articles[i] = &core.Article{
			Title:     seed.Title,
			Content:   seed.Content,
			Source:    seed.Source,
			Timestamp: timestamp,
		}
	}
	return articles
}

func main() {
	engine, err := newsintel.NewEngine(*dbPath)
	if err != nil {
		panic(err)
	}
	defer engine.Close()

	pipeline, err := engine.NewPipeline()
	if err != nil {
		panic(err)
	}
	defer pipeline.Release()

	seeds := samples
	if *seedFileName != "" {
		seeds, err = loadSeedFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	}

	ctx := context.Background()
	results := pipeline.IngestBatch(ctx, toArticles(seeds))

	var stored, skipped int
	for _, result := range results {
		if result == nil || result.IsDuplicate {
			skipped++
			continue
		}
		stored++
	}
	slog.Info("seeding complete", "stored", stored, "skipped", skipped)
}
