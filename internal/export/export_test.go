package export

import (
	"testing"

	"github.com/dmitrijs2005/solidarias/internal/common"
	"github.com/dmitrijs2005/solidarias/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProducts() []*models.Product {
	return []*models.Product{
		{ID: 1, Name: "Rice", Quantity: 10, Price: 2.5},
		{ID: 2, Name: "Beans, black", Quantity: 0, Price: 1},
		{ID: 5, Name: `Oil "extra"`, Quantity: -3, Price: 0.1},
	}
}

func TestEncode_TXT(t *testing.T) {
	got, err := Encode(FormatTXT, sampleProducts()[:2])
	require.NoError(t, err)
	assert.Equal(t, "1\tRice\t10\t2.5\n2\tBeans, black\t0\t1\n", string(got))
}

func TestEncode_TXTWritesNamesVerbatim(t *testing.T) {
	got, err := Encode(FormatTXT, sampleProducts()[2:])
	require.NoError(t, err)
	assert.Equal(t, "5\tOil \"extra\"\t-3\t0.1\n", string(got))

	for _, name := range []string{"a\tb", "a\nb", "a\r"} {
		_, err := Encode(FormatTXT, []*models.Product{{ID: 1, Name: name}})
		assert.ErrorIs(t, err, common.ErrorValidation, "%q", name)
	}
}

func TestDecode_TXTToleratesCRLF(t *testing.T) {
	got, err := Decode(FormatTXT, []byte("1\tRice\t10\t2.5\r\n\n2\tBeans\t0\t1\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []*models.Product{
		{ID: 1, Name: "Rice", Quantity: 10, Price: 2.5},
		{ID: 2, Name: "Beans", Quantity: 0, Price: 1},
	}, got)
}

func TestEncode_CSV(t *testing.T) {
	got, err := Encode(FormatCSV, sampleProducts()[:2])
	require.NoError(t, err)
	assert.Equal(t, "id,name,quantity,price\n1,Rice,10,2.5\n2,\"Beans, black\",0,1\n", string(got))
}

func TestEncode_JSON(t *testing.T) {
	got, err := Encode(FormatJSON, sampleProducts()[:1])
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"name":"Rice","quantity":10,"price":2.5}]`, string(got))

	empty, err := Encode(FormatJSON, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(empty))
}

func TestRoundTrip_PreservesTuplesAndOrder(t *testing.T) {
	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			data, err := Encode(f, sampleProducts())
			require.NoError(t, err)

			got, err := Decode(f, data)
			require.NoError(t, err)

			if diff := cmp.Diff(sampleProducts(), got); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecode_Empty(t *testing.T) {
	for _, f := range []Format{FormatTXT, FormatCSV} {
		got, err := Decode(f, nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode(FormatCSV, []byte("id,name,quantity,price\nx,Rice,1,1\n"))
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = Decode(FormatTXT, []byte("1\tRice\n"))
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"txt", "json", "csv"} {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		assert.Equal(t, "products."+s, f.FileName())
	}

	_, err := ParseFormat("xml")
	assert.ErrorIs(t, err, common.ErrorValidation)
}
