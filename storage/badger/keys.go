package badger

import (
	"fmt"
	"strings"

	"github.com/finsight/newsintel/storage"
)

// Key prefixes for different data types
const (
	articleRecordPrefix  = "artrec"
	symbolIndexPrefix    = "artsym"
	companyIndexPrefix   = "artcom"
	sectorIndexPrefix    = "artsec"
	regulatorIndexPrefix = "artreg"
	sentimentIndexPrefix = "artsen"
)

// indexPrefixFor maps a filter field to its index key prefix.
func indexPrefixFor(field storage.Field) (string, bool) {
	switch field {
	case storage.FieldStockSymbol:
		return symbolIndexPrefix, true
	case storage.FieldCompany:
		return companyIndexPrefix, true
	case storage.FieldSector:
		return sectorIndexPrefix, true
	case storage.FieldRegulator:
		return regulatorIndexPrefix, true
	case storage.FieldSentiment:
		return sentimentIndexPrefix, true
	}
	return "", false
}

// makeArticleKey generates a key for an article record by ID.
func makeArticleKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", articleRecordPrefix, id))
}

// makeIndexKey generates a composite key for a secondary index entry.
// Format: prefix:value:articleID. Values are lowercased so index scans
// match the same way filter evaluation does.
func makeIndexKey(prefix, value, articleID string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", prefix, escapeIndexValue(value), articleID))
}

// makePartialIndexKey generates a partial key for index scans over one value.
// Format: prefix:value:
func makePartialIndexKey(prefix, value string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", prefix, escapeIndexValue(value)))
}

// escapeIndexValue lowercases an indexed value and escapes the key
// separator, so a value containing ':' cannot land under another value's
// scan prefix.
func escapeIndexValue(value string) string {
	value = strings.ToLower(value)
	value = strings.ReplaceAll(value, `\`, `\\`)
	return strings.ReplaceAll(value, ":", `\:`)
}

// articleIDFromIndexKey extracts the article ID from an index key.
// The ID is the segment after the last colon; escaped values may contain
// colons themselves, article IDs never do.
func articleIDFromIndexKey(key []byte) string {
	s := string(key)
	i := strings.LastIndexByte(s, ':')
	if i < 0 {
		return ""
	}
	return s[i+1:]
}
