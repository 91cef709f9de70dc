package phrase

// Query selects one of the three lookup modes of Find. Build it with
// ByPhrase, ByDoc or At.
type Query struct {
	phrase    string
	doc       DocID
	hasPhrase bool
	hasDoc    bool
}

// ByPhrase queries the documents containing phrase.
func ByPhrase(phrase string) Query {
	return Query{phrase: phrase, hasPhrase: true}
}

// ByDoc queries the phrases occurring in doc.
func ByDoc(doc DocID) Query {
	return Query{doc: doc, hasDoc: true}
}

// At queries the occurrences of phrase in doc.
func At(phrase string, doc DocID) Query {
	return Query{phrase: phrase, doc: doc, hasPhrase: true, hasDoc: true}
}

// Result holds the answer to a Query. Exactly one field is populated,
// matching the query mode; it is empty rather than nil when nothing matched.
type Result struct {
	Spans   []Span   // At
	Docs    []DocID  // ByPhrase
	Phrases []string // ByDoc
}

// Find answers q. The zero Query names neither a phrase nor a document and
// fails with ErrInvalidArgument.
func (x *Index) Find(q Query) (Result, error) {
	switch {
	case q.hasPhrase && q.hasDoc:
		return Result{Spans: x.Spans(q.phrase, q.doc)}, nil
	case q.hasPhrase:
		return Result{Docs: x.Documents(q.phrase)}, nil
	case q.hasDoc:
		return Result{Phrases: x.Phrases(q.doc)}, nil
	default:
		return Result{}, ErrInvalidArgument
	}
}
