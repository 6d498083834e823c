package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncoderCSV_StartsWithUTF8BOM(t *testing.T) {
	data, err := encoderCSV(tableau{colonnes: []string{"Libellé"}, lignes: [][]any{{"Café"}}})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
	assert.Equal(t, "Libellé\nCafé\n", string(data[3:]))
}
