package pdfextract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTextEmptyInput(t *testing.T) {
	_, err := ExtractText(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoText)
}

func TestExtractTextNotAPDF(t *testing.T) {
	_, err := ExtractText(strings.NewReader("plain text, not a pdf"))
	assert.Error(t, err)
}
