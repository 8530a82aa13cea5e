package series

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	input := `sale_date,total_amount,total_quantity,invoices_count,total_discount
2024-03-01,1500.50,120,14,35.25
2024-03-02,1800.00,130,16,40.00
`
	s, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())

	rec, ok := s.At(day("2024-03-01"))
	require.True(t, ok)
	require.Equal(t, 1500.50, rec.TotalAmount)
	require.Equal(t, int64(120), rec.TotalQuantity)
	require.Equal(t, int64(14), rec.InvoicesCount)
	require.Equal(t, 35.25, rec.TotalDiscount)
}

func TestReadCSVReorderedHeaderWithExtras(t *testing.T) {
	input := `total_amount,sale_date,notes,total_discount,invoices_count,total_quantity
100.0,2024-03-01,promo day,5.0,3,12
`
	s, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)

	rec, ok := s.At(day("2024-03-01"))
	require.True(t, ok)
	require.Equal(t, 100.0, rec.TotalAmount)
	require.Equal(t, int64(12), rec.TotalQuantity)
}

func TestReadCSVMissingColumn(t *testing.T) {
	input := `sale_date,total_amount,total_quantity,invoices_count
2024-03-01,100.0,12,3
`
	_, err := ReadCSV(strings.NewReader(input))
	require.ErrorContains(t, err, "total_discount")
}

func TestReadCSVDecimalIntegerColumns(t *testing.T) {
	input := `sale_date,total_amount,total_quantity,invoices_count,total_discount
2024-03-01,100.0,12.0,3.0,0.0
`
	s, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)

	rec, _ := s.At(day("2024-03-01"))
	require.Equal(t, int64(12), rec.TotalQuantity)
	require.Equal(t, int64(3), rec.InvoicesCount)
}

func TestReadCSVRejectsNegativeAmount(t *testing.T) {
	input := `sale_date,total_amount,total_quantity,invoices_count,total_discount
2024-03-01,-5.0,12,3,0
`
	_, err := ReadCSV(strings.NewReader(input))
	require.ErrorContains(t, err, "non-negative")
}

func TestReadCSVRejectsBadDate(t *testing.T) {
	input := `sale_date,total_amount,total_quantity,invoices_count,total_discount
03/01/2024,100.0,12,3,0
`
	_, err := ReadCSV(strings.NewReader(input))
	require.ErrorContains(t, err, "sale_date")
}
