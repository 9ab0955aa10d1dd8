package edgar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCompanyFacts = `{
  "cik": 320193,
  "entityName": "Apple Inc.",
  "facts": {
    "us-gaap": {
      "Assets": {
        "label": "Assets",
        "description": "Total assets",
        "units": {
          "USD": [
            {
              "end": "2023-09-30",
              "val": 352583000000,
              "accn": "0000320193-23-000106",
              "fy": 2023,
              "fp": "FY",
              "form": "10-K",
              "filed": "2023-11-03",
              "frame": "CY2023Q3I"
            },
            {
              "end": "2022-09-24",
              "val": 352755000000,
              "accn": "0000320193-22-000108",
              "fy": 2022,
              "fp": "FY",
              "form": "10-K",
              "filed": "2022-10-28"
            }
          ]
        }
      },
      "NetIncomeLoss": {
        "label": "Net Income (Loss)",
        "units": {
          "USD": [
            {
              "start": "2022-09-25",
              "end": "2023-09-30",
              "val": 96995000000,
              "accn": "0000320193-23-000106",
              "fy": 2023,
              "fp": "FY",
              "form": "10-K",
              "filed": "2023-11-03"
            }
          ]
        }
      }
    },
    "dei": {
      "EntityCommonStockSharesOutstanding": {
        "label": "Shares Outstanding",
        "units": {
          "shares": [
            {
              "end": "2023-10-20",
              "val": 15552752000,
              "fy": 2023,
              "fp": "FY",
              "form": "10-K",
              "filed": "2023-11-03"
            }
          ]
        }
      }
    }
  }
}`

func TestParseCompanyFacts(t *testing.T) {
	doc, err := ParseCompanyFacts(strings.NewReader(sampleCompanyFacts))
	require.NoError(t, err)

	assert.Equal(t, 320193, doc.CIK)
	assert.Equal(t, "Apple Inc.", doc.EntityName)

	gaap := doc.GAAP()
	require.NotNil(t, gaap)

	assets, ok := gaap["Assets"]
	require.True(t, ok)
	require.Len(t, assets.Units["USD"], 2)

	first := assets.Units["USD"][0]
	assert.Equal(t, "2023-09-30", first.End)
	assert.Equal(t, 2023, first.FY)
	assert.Equal(t, "10-K", first.Form)
	v, ok := first.Float()
	require.True(t, ok)
	assert.Equal(t, 352583000000.0, v)

	ni := gaap["NetIncomeLoss"].Units["USD"][0]
	assert.Equal(t, "2022-09-25", ni.Start)
}

func TestParseCompanyFactsMalformed(t *testing.T) {
	_, err := ParseCompanyFacts(strings.NewReader(`{"cik": "oops`))
	require.Error(t, err)
}

func TestGAAPNilSafety(t *testing.T) {
	var doc *CompanyFacts
	assert.Nil(t, doc.GAAP())
	assert.Nil(t, (&CompanyFacts{}).GAAP())
}

func TestFactValueFloat(t *testing.T) {
	tests := []struct {
		name string
		val  any
		want float64
		ok   bool
	}{
		{"float64", 42.5, 42.5, true},
		{"int", 7, 7, true},
		{"string is not numeric", "N/A", 0, false},
		{"nil", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FactValue{Val: tt.val}.Float()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
