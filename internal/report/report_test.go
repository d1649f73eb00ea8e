package report_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raptor-audit/cairo-parser/internal/model"
	"github.com/raptor-audit/cairo-parser/internal/report"
)

func sampleResult() report.PipelineResult {
	return report.PipelineResult{
		TotalFiles:      2,
		TotalContracts:  2,
		StubbingEnabled: true,
		Contracts: map[string]*model.ContractInfo{
			"Bar": model.NewContractInfo("Bar", model.KindContract),
			"Foo": model.NewContractInfo("Foo", model.KindModule),
		},
		StubReport: report.StubReport{
			TotalStubs:     1,
			TotalResolved:  1,
			TotalSymbols:   2,
			StubbedModules: []string{"core::array"},
		},
	}
}

// TestJSONIsDeterministic implements testable property 6: two builds from
// the same result produce byte-identical JSON, with map keys sorted.
func TestJSONIsDeterministic(t *testing.T) {
	doc := report.Build(sampleResult())

	first, err := report.JSON(doc)
	require.NoError(t, err)
	second, err := report.JSON(doc)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	barIdx := bytes.Index(first, []byte(`"Bar"`))
	fooIdx := bytes.Index(first, []byte(`"Foo"`))
	require.NotEqual(t, -1, barIdx)
	require.NotEqual(t, -1, fooIdx)
	assert.Less(t, barIdx, fooIdx, "contracts map should serialize with lexicographically sorted keys")
}

func TestJSONRoundTripsMetadataAndStubReport(t *testing.T) {
	doc := report.Build(sampleResult())
	data, err := report.JSON(doc)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	metadata := decoded["metadata"].(map[string]interface{})
	assert.Equal(t, float64(2), metadata["total_files"])
	assert.Equal(t, true, metadata["stubbing_enabled"])

	stubReport := decoded["stub_report"].(map[string]interface{})
	assert.Equal(t, float64(1), stubReport["total_stubs"])

	_, hasAnalysis := decoded["analysis"]
	assert.False(t, hasAnalysis, "analysis key should be omitted when no analysis was run")
}

func TestYAMLMarshalsWithoutError(t *testing.T) {
	doc := report.Build(sampleResult())
	data, err := report.YAML(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), "total_files")
}

func TestSortedContractNames(t *testing.T) {
	doc := report.Build(sampleResult())
	assert.Equal(t, []string{"Bar", "Foo"}, report.SortedContractNames(doc))
}

func TestWriteSummaryMentionsStubsAndAnalysis(t *testing.T) {
	r := sampleResult()
	r.Analysis = []model.ContractAnalysis{
		{
			ContractName: "Bar",
			Functions: []model.FunctionAnalysis{
				{FunctionName: "transfer", HasBody: true, Warnings: []model.Warning{
					{Kind: model.DiagUnusedDefinition, Message: "definition of v is never used", Line: 4, Variable: "v"},
				}},
			},
		},
	}
	doc := report.Build(r)

	var buf bytes.Buffer
	report.WriteSummary(&buf, doc)

	out := buf.String()
	assert.Contains(t, out, "stubs synthesized")
	assert.Contains(t, out, "1 warnings")
	assert.Contains(t, out, "Bar:transfer")
}
