package importcsv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVParser_StripsBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Nome,Endereço\nHospital A,Rua B\n")...)

	parser, err := ParseFromBytes(data)
	require.NoError(t, err)
	require.NoError(t, parser.ParseHeader())

	assert.Equal(t, []string{"Nome", "Endereço"}, parser.Headers())
}

func TestCSVParser_RowNumbering(t *testing.T) {
	data := []byte("Nome,Endereço\nHospital A,Rua B\nHospital C,\n")

	parser, err := ParseFromBytes(data)
	require.NoError(t, err)
	require.NoError(t, parser.ParseHeader())

	rows, err := parser.ReadAllRows()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Header is line 1, first data row is line 2
	assert.Equal(t, 2, rows[0].LineNumber)
	assert.Equal(t, 3, rows[1].LineNumber)
	assert.Equal(t, "Hospital A", rows[0].Get("Nome"))
	assert.Equal(t, "", rows[1].Get("Endereço"))
}

func TestCSVParser_SkipsEmptyRows(t *testing.T) {
	data := []byte("Nome,Endereço\nHospital A,Rua B\n,\n\nHospital C,Rua D\n")

	parser, err := ParseFromBytes(data)
	require.NoError(t, err)
	require.NoError(t, parser.ParseHeader())

	rows, err := parser.ReadAllRows()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Hospital C", rows[1].Get("Nome"))
}

func TestCSVParser_ShortRowPadsMissingColumns(t *testing.T) {
	data := []byte("Nome,Endereço\nHospital A\n")

	parser, err := ParseFromBytes(data)
	require.NoError(t, err)
	require.NoError(t, parser.ParseHeader())

	rows, err := parser.ReadAllRows()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Get("Endereço"))
}

func TestCSVParser_EmptyFile(t *testing.T) {
	_, err := ParseFromBytes([]byte{})
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestCSVParser_InvalidEncoding(t *testing.T) {
	// Latin-1 encoded "Endereço"
	_, err := ParseFromBytes([]byte{'E', 'n', 'd', 'e', 'r', 'e', 0xE7, 'o'})
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestCSVParser_ValidateHeaders(t *testing.T) {
	data := []byte("Nome\nHospital A\n")

	parser, err := ParseFromBytes(data)
	require.NoError(t, err)
	require.NoError(t, parser.ParseHeader())

	missing := parser.ValidateHeaders([]string{"Nome", "Endereço"})
	assert.Equal(t, []string{"Endereço"}, missing)
}

func TestErrorCollection_Cap(t *testing.T) {
	ec := NewErrorCollection(2)
	ec.AddRequiredError(2, "Nome")
	ec.AddRequiredError(3, "Nome")
	ec.AddRequiredError(4, "Nome")

	assert.Len(t, ec.Errors(), 2)
	assert.Equal(t, 3, ec.TotalCount())
	assert.True(t, ec.IsTruncated())
}
