package localfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kirillkom/corpus-qa/internal/core/domain"
	"github.com/kirillkom/corpus-qa/internal/infrastructure/extractor/plaintext"
)

const corpusExt = ".txt"

// Loader reads every .txt file directly inside a directory. Subdirectories
// and other extensions are ignored.
type Loader struct {
	dir       string
	extractor *plaintext.Extractor
}

func NewLoader(dir string) *Loader {
	return &Loader{
		dir:       dir,
		extractor: plaintext.NewExtractor(),
	}
}

// Load returns the corpus ordered by document ID. Any unreadable entry fails
// the whole load.
func (l *Loader) Load(ctx context.Context) ([]domain.RawDocument, error) {
	if strings.TrimSpace(l.dir) == "" {
		return nil, domain.WrapError(domain.ErrCorpusLoad, "load corpus", fmt.Errorf("corpus directory is not set"))
	}

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCorpusLoad, "read corpus dir", err)
	}

	docs := make([]domain.RawDocument, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), corpusExt) {
			continue
		}

		text, err := l.readFile(entry.Name())
		if err != nil {
			return nil, err
		}
		docs = append(docs, domain.RawDocument{
			ID:   strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())),
			Text: text,
		})
	}

	sort.SliceStable(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

func (l *Loader) readFile(name string) (string, error) {
	f, err := os.Open(filepath.Join(l.dir, name))
	if err != nil {
		return "", domain.WrapError(domain.ErrCorpusLoad, "open "+name, err)
	}
	defer f.Close()

	text, err := l.extractor.Extract(name, f)
	if err != nil {
		if domain.IsKind(err, domain.ErrCorpusLoad) {
			return "", err
		}
		return "", domain.WrapError(domain.ErrCorpusLoad, "extract "+name, err)
	}
	return text, nil
}
