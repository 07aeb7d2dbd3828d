package main

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTallyGenerate(t *testing.T) {
	var res Result
	res.tallyGenerate(http.StatusOK, []byte(`{"success":true,"result":"AI response unavailable."}`))
	res.tallyGenerate(http.StatusOK, []byte(`{"success":true,"result":"Day 1: Unkal Lake"}`))
	res.tallyGenerate(http.StatusInternalServerError, []byte(`{"success":false,"error":"boom"}`))
	res.tallyGenerate(http.StatusMethodNotAllowed, []byte(`{"success":false,"error":"Method not allowed"}`))

	assert.Equal(t, 1, res.Fallbacks)
	assert.Equal(t, 1, res.UpstreamErrors)
}

func TestSummarize(t *testing.T) {
	results := []Result{
		{Name: "Generate: empty body -> fallback", Status: "PASS", Fallbacks: 1},
		{Name: "Generate: chat", Status: "PENDING", UpstreamErrors: 1},
		{Name: "Catalog: list", Status: "PASS"},
		{Name: "Catalog: detail", Status: "SKIP"},
		{Name: "unnamed", Status: "PASS"},
	}

	sum := summarize(results)
	assert.Equal(t, 1, sum.byGroup["Generate"]["PASS"])
	assert.Equal(t, 1, sum.byGroup["Generate"]["PENDING"])
	assert.Equal(t, 1, sum.byGroup["Catalog"]["SKIP"])
	assert.Equal(t, 1, sum.byGroup["Other"]["PASS"])
	assert.Equal(t, 3, sum.total["PASS"])
	assert.Equal(t, 1, sum.fallbacks)
	assert.Equal(t, 1, sum.upstreamErrors)

	assert.Equal(t, 0, sum.exitCode(false))
	assert.Equal(t, 1, sum.exitCode(true), "strict mode fails on PENDING")

	var out bytes.Buffer
	sum.Write(&out)
	assert.Contains(t, out.String(), "Total        PASS=3 FAIL=0 PENDING=1 SKIP=1")
	assert.Contains(t, out.String(), "generate: fallback replies=1 upstream errors=1")
}

func TestSummarize_FailureExitCode(t *testing.T) {
	sum := summarize([]Result{{Name: "Health: live", Status: "FAIL"}})
	assert.Equal(t, 1, sum.exitCode(false))
}
