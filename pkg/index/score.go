package index

import (
	"cmp"
	"slices"
	"strings"
	"unicode"

	"github.com/adrianliechti/contentkit/pkg/text"
)

const titleBoost = 2

// Terms splits text into lower-cased words of letters and digits.
func Terms(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Score rates a document by how often the query terms occur in its plain text
// content, with section title matches counting double. Zero means no match.
func Score(query string, d Document) float32 {
	terms := slices.Compact(slices.Sorted(slices.Values(Terms(query))))

	if len(terms) == 0 {
		return 0
	}

	counts := make(map[string]int)

	for _, t := range Terms(text.PlainText(d.Content)) {
		counts[t]++
	}

	for _, t := range Terms(d.SectionTitle) {
		counts[t] += titleBoost
	}

	var score float32
	var matched int

	for _, t := range terms {
		if n := counts[t]; n > 0 {
			score += float32(n)
			matched++
		}
	}

	if matched == 0 {
		return 0
	}

	// favor documents covering more distinct terms
	return score * float32(matched) / float32(len(terms))
}

// Highlights returns the plain text lines of content containing a query term.
func Highlights(query, content string) []string {
	terms := Terms(query)

	var result []string

	for line := range strings.SplitSeq(text.PlainText(content), "\n") {
		words := Terms(line)

		for _, t := range terms {
			if slices.Contains(words, t) {
				result = append(result, line)
				break
			}
		}
	}

	return result
}

// Matches reports whether a document satisfies all filters. The keys
// "fileName" and "sectionTitle" address the document fields, others the metadata.
func Matches(d Document, filters map[string]string) bool {
	for k, v := range filters {
		var val string
		var ok bool

		switch k {
		case "fileName":
			val, ok = d.FileName, true
		case "sectionTitle":
			val, ok = d.SectionTitle, true
		default:
			val, ok = d.Metadata[k]
		}

		if !ok || !strings.EqualFold(v, val) {
			return false
		}
	}

	return true
}

// Rank scores, filters and orders documents for a query.
func Rank(query string, documents []Document, options *QueryOptions) []Result {
	if options == nil {
		options = new(QueryOptions)
	}

	results := make([]Result, 0)

	for _, d := range documents {
		if !Matches(d, options.Filters) {
			continue
		}

		score := Score(query, d)

		if score <= 0 {
			continue
		}

		results = append(results, Result{
			Document: d,

			Score:      score,
			Highlights: Highlights(query, d.Content),
		})
	}

	slices.SortFunc(results, func(a, b Result) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}

		return cmp.Compare(a.ID, b.ID)
	})

	if options.Limit != nil {
		limit := max(0, min(*options.Limit, len(results)))
		results = results[:limit]
	}

	return results
}

// Paginate returns the documents after the cursor, ordered by id.
func Paginate(documents []Document, options *ListOptions) *Page[Document] {
	if options == nil {
		options = new(ListOptions)
	}

	slices.SortFunc(documents, func(a, b Document) int {
		return cmp.Compare(a.ID, b.ID)
	})

	if options.Cursor != "" {
		i, _ := slices.BinarySearchFunc(documents, options.Cursor, func(d Document, id string) int {
			return cmp.Compare(d.ID, id)
		})

		for i < len(documents) && documents[i].ID <= options.Cursor {
			i++
		}

		documents = documents[i:]
	}

	page := &Page[Document]{
		Items: documents,
	}

	if options.Limit != nil && *options.Limit > 0 && len(documents) > *options.Limit {
		page.Items = documents[:*options.Limit]
		page.Cursor = page.Items[len(page.Items)-1].ID
	}

	return page
}
