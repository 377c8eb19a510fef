package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/domain"
)

func TestFileNameFromURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{"plain", "https://cdn.example.com/patterns/p1.pdf", "p1.pdf"},
		{"query", "https://cdn.example.com/patterns/p1.pdf?v=12", "p1.pdf"},
		{"fragment", "https://cdn.example.com/p2.PDF#page=3", "p2.PDF"},
		{"directory", "https://cdn.example.com/patterns/", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, domain.FileNameFromURL(tt.url))
		})
	}
}

func TestBaseName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "p1", domain.BaseName("p1.pdf"))
	assert.Equal(t, "cozy.cardigan", domain.BaseName("cozy.cardigan.pdf"))
	assert.Equal(t, "p1", domain.DownloadedDocument{FileName: "p1.pdf"}.BaseName())
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("document 3: %w", domain.NetworkError("download", errors.New("reset")))
	assert.Equal(t, domain.KindNetwork, domain.KindOf(wrapped))
	assert.True(t, domain.IsKind(wrapped, domain.KindNetwork))
	assert.Equal(t, domain.KindUnexpected, domain.KindOf(errors.New("plain")))
	assert.False(t, domain.IsKind(nil, domain.KindUnexpected))
	assert.Equal(t, "[parse] open: bad xref", domain.ParseError("open", errors.New("bad xref")).Error())
}

func TestStatusFor(t *testing.T) {
	t.Parallel()

	s, ok := domain.StatusFor(domain.KindWrite)
	assert.True(t, ok)
	assert.Equal(t, domain.StatusFailedWrite, s)
	assert.True(t, s.Failed())

	_, ok = domain.StatusFor(domain.KindUnexpected)
	assert.False(t, ok)
	_, ok = domain.StatusFor(domain.KindConfig)
	assert.False(t, ok)
	assert.False(t, domain.StatusSkippedExisting.Failed())
}
