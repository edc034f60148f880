// Package retrieval implements the TF-IDF answer lookup behind the support
// chat widget. It is a deterministic, stateless ranking over a fixed corpus of
// question/answer pairs; the conversational layer on top of it is an external
// collaborator and not part of this package.
package retrieval

import (
	"math"
	"strings"
	"unicode"

	"github.com/bhbank/credit-backend/internal/domain/entity"
)

// FallbackAnswer is returned when no corpus question scores above zero.
const FallbackAnswer = "Désolé, je n'ai pas trouvé de réponse adaptée."

// Index is an immutable TF-IDF index over corpus questions.
type Index struct {
	corpus []entity.QAPair
	docs   []map[string]float64 // per-document normalized tf-idf vectors
	idf    map[string]float64
}

// Tokenize lowercases and splits on anything that is not a letter or digit.
// Accented letters are kept as-is; French corpus questions and user queries go
// through the same path so they match each other.
func Tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// NewIndex builds the index from a QA corpus.
func NewIndex(corpus []entity.QAPair) *Index {
	idx := &Index{
		corpus: corpus,
		docs:   make([]map[string]float64, len(corpus)),
		idf:    make(map[string]float64),
	}

	// document frequency per term
	df := make(map[string]int)
	tokenized := make([][]string, len(corpus))
	for i, qa := range corpus {
		tokenized[i] = Tokenize(qa.Question)
		seen := make(map[string]bool)
		for _, tok := range tokenized[i] {
			if !seen[tok] {
				seen[tok] = true
				df[tok]++
			}
		}
	}

	// smoothed idf keeps terms present in every document from zeroing out
	n := float64(len(corpus))
	for term, count := range df {
		idx.idf[term] = math.Log(1+n/float64(count)) + 1
	}

	for i, toks := range tokenized {
		idx.docs[i] = idx.vector(toks)
	}
	return idx
}

// vector builds a length-normalized tf-idf vector from tokens.
func (idx *Index) vector(tokens []string) map[string]float64 {
	if len(tokens) == 0 {
		return nil
	}
	tf := make(map[string]float64)
	for _, tok := range tokens {
		tf[tok]++
	}
	vec := make(map[string]float64, len(tf))
	var norm float64
	for term, count := range tf {
		idf, ok := idx.idf[term]
		if !ok {
			continue // query-only term, contributes nothing to any dot product
		}
		w := (count / float64(len(tokens))) * idf
		vec[term] = w
		norm += w * w
	}
	if norm == 0 {
		return nil
	}
	norm = math.Sqrt(norm)
	for term := range vec {
		vec[term] /= norm
	}
	return vec
}

func cosine(a, b map[string]float64) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	var dot float64
	for term, w := range a {
		dot += w * b[term]
	}
	return dot
}

// Retrieve returns the answer whose question is most similar to the query,
// or FallbackAnswer when nothing scores above zero.
func (idx *Index) Retrieve(query string) (string, float64) {
	qvec := idx.vector(Tokenize(query))
	best, bestScore := -1, 0.0
	for i, doc := range idx.docs {
		if score := cosine(qvec, doc); score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return FallbackAnswer, 0
	}
	return idx.corpus[best].Answer, bestScore
}

// RetrieveAnswer is the one-shot convenience form used when the corpus is
// loaded per call.
func RetrieveAnswer(query string, corpus []entity.QAPair) string {
	answer, _ := NewIndex(corpus).Retrieve(query)
	return answer
}
