package lsp

import (
	"sort"
	"sync"
)

// Document is an open document and the result of analyzing it.
type Document struct {
	URI      string
	Language Language
	Text     string
	Version  int32
	Problems []Problem
	Symbols  []Symbol
}

// Workspace holds the documents opened by the client.
type Workspace struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

func NewWorkspace() *Workspace {
	return &Workspace{
		docs: make(map[string]*Document),
	}
}

// Update replaces the text of uri, analyzes it and returns the document.
func (w *Workspace) Update(uri string, version int32, text string) *Document {
	doc := &Document{
		URI:      uri,
		Language: LanguageOf(uri),
		Text:     text,
		Version:  version,
	}
	switch doc.Language {
	case LanguageEBNF:
		doc.Problems, doc.Symbols = analyzeGrammar(text)
	case LanguageJSON:
		doc.Problems = analyzeJSON(text)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if old, ok := w.docs[uri]; ok && old.Version > version {
		return old
	}
	w.docs[uri] = doc
	return doc
}

func (w *Workspace) Get(uri string) *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.docs[uri]
}

func (w *Workspace) Remove(uri string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.docs, uri)
}

// URIs returns the URIs of all open documents in sorted order.
func (w *Workspace) URIs() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	uris := make([]string, 0, len(w.docs))
	for uri := range w.docs {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris
}
