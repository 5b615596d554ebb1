package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplay(t *testing.T) {
	assert.Equal(t, "$1,234.57", Display(d("1234.567"), "USD"))
	assert.Equal(t, "$0.00", Display(d("0"), "USD"))
	assert.Contains(t, Display(d("10"), "EUR"), "€")
	assert.Equal(t, "1.50 XXX", Display(d("1.5"), "XXX"))
}

func TestWriteSummaries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummaries(&buf, Summarize(sampleRows()), "USD"))

	out := buf.String()
	assert.Contains(t, out, "2022 (1 rows)")
	assert.Contains(t, out, "2023 (2 rows)")
	assert.Contains(t, out, "Shares sold            15")
	assert.Contains(t, out, "Capital gains          $199.84")
}

func TestWriteSummaries_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummaries(&buf, nil, "EUR"))
	assert.Equal(t, "No sales found.\n", buf.String())
}
