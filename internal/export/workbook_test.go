package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWrite(t *testing.T) {
	data, err := Write(Sheet{
		Name: "Boreholes",
		Columns: []Column{
			{Header: "Name", Width: 25},
			{Header: "Beneficiaries"},
		},
		Rows: [][]any{
			{"Garissa well", 1200},
			{"Wajir well", nil},
		},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Boreholes"}, f.GetSheetList())

	rows, err := f.GetRows("Boreholes")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Name", "Beneficiaries"}, rows[0])
	assert.Equal(t, []string{"Garissa well", "1200"}, rows[1])
	assert.Equal(t, "Wajir well", rows[2][0])
}
