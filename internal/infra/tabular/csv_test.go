//go:build unit

package tabular_test

import (
	"testing"
	"time"

	"vitrine-engine/internal/infra"
	"vitrine-engine/internal/infra/tabular"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Run("normalizes headers and trims cells", func(t *testing.T) {
		data := []byte("ID, Preco Vista ,NOME\n1, 10,50 ,Camiseta\n")

		table, err := tabular.Decode(data)
		require.NoError(t, err)

		assert.Equal(t, 1, table.Len())
		assert.Equal(t, "1", table.Field(0, "ID"))
		assert.Equal(t, "10,50", table.Field(0, "PRECO_VISTA"))
		assert.Equal(t, "Camiseta", table.Field(0, "nome"))
	})

	t.Run("field aliases fall through in preference order", func(t *testing.T) {
		data := []byte("ID,PRECO\n1,25,00\n")

		table, err := tabular.Decode(data)
		require.NoError(t, err)

		assert.Equal(t, "25", table.Field(0, "PRECOVISTA", "PRECO"))
		assert.Equal(t, "", table.Field(0, "PRECOCARTAO"))
	})

	t.Run("tolerates ragged rows", func(t *testing.T) {
		data := []byte("ID,NOME,QUANTIDADE\n1,Camiseta\n2,Caneca,5\n")

		table, err := tabular.Decode(data)
		require.NoError(t, err)

		assert.Equal(t, 2, table.Len())
		assert.Equal(t, "", table.Field(0, "QUANTIDADE"))
		assert.Equal(t, "5", table.Field(1, "QUANTIDADE"))
	})

	t.Run("empty document is malformed", func(t *testing.T) {
		_, err := tabular.Decode([]byte(""))
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindMalformed))
	})

	t.Run("strips utf8 bom from the first header", func(t *testing.T) {
		data := []byte("\uFEFFID,NOME\n1,Camiseta\n")

		table, err := tabular.Decode(data)
		require.NoError(t, err)
		assert.True(t, table.HasColumn("ID"))
	})
}

func TestParseMoneyCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"10,50", 1050},
		{"R$ 10,50", 1050},
		{"1.234,56", 123456},
		{"1234.56", 123456},
		{"59.9", 5990},
		{"0", 0},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := tabular.ParseMoneyCents(c.in)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := tabular.ParseMoneyCents("dez reais")
		require.Error(t, err)
	})
}

func TestParseBool(t *testing.T) {
	for _, truthy := range []string{"1", "S", "sim", "TRUE", "verdadeiro", "y", "YES"} {
		assert.True(t, tabular.ParseBool(truthy), truthy)
	}
	for _, falsy := range []string{"0", "N", "nao", "FALSE", ""} {
		assert.False(t, tabular.ParseBool(falsy), falsy)
	}
}

func TestParseCivilDate(t *testing.T) {
	loc := time.FixedZone("-03", -3*60*60)

	t.Run("brazilian layout", func(t *testing.T) {
		got, err := tabular.ParseCivilDate("25/12/2026", loc)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.December, 25, 0, 0, 0, 0, loc), got)
	})

	t.Run("iso layout", func(t *testing.T) {
		got, err := tabular.ParseCivilDate("2026-12-25", loc)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.December, 25, 0, 0, 0, 0, loc), got)
	})

	t.Run("unparseable date errors", func(t *testing.T) {
		_, err := tabular.ParseCivilDate("natal", loc)
		require.Error(t, err)
	})
}

func TestParseAttributes(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want map[string]string
	}{
		{
			name: "colon pairs with semicolons",
			in:   "Cor:Azul;Tamanho:M",
			want: map[string]string{"Cor": "Azul", "Tamanho": "M"},
		},
		{
			name: "pipe separators and equals pairs",
			in:   "Cor=Azul|Tamanho=M",
			want: map[string]string{"Cor": "Azul", "Tamanho": "M"},
		},
		{
			name: "empty cell",
			in:   "",
			want: nil,
		},
		{
			name: "pairs without separator are skipped",
			in:   "Azul;Tamanho:M",
			want: map[string]string{"Tamanho": "M"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := tabular.ParseAttributes(c.in)
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("ParseAttributes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
