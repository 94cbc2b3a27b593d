package batch_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openreg/regval/pkg/batch"
	"github.com/openreg/regval/pkg/engine"
	"github.com/openreg/regval/pkg/rules"
	"github.com/openreg/regval/pkg/vrr"
)

const validLEI = "5493000IBP32UQZ0KL24"

func sampleReport(id string) engine.Report {
	return engine.Report{
		ID:              id,
		Type:            rules.ReportTypeAnnualFinancialReturn,
		InstitutionCode: "FR12345678",
		Sections: []engine.Section{
			{ID: "institution", Data: map[string]any{
				"lei":          validLEI,
				"contactEmail": "compliance@bank.example",
			}},
			{ID: "balanceSheet", Data: map[string]any{
				"reportingDate":     "2025-06-30",
				"totalAssets":       "50000000.00",
				"totalLiabilities":  "38000000.00",
				"shareholderEquity": "12000000.00",
			}},
		},
	}
}

func sampleContext() *rules.Context {
	return &rules.Context{ReportType: rules.ReportTypeAnnualFinancialReturn, ReportingPeriod: "2025-H1"}
}

func newService(t *testing.T, cfg batch.Config) *batch.Service {
	t.Helper()
	svc := batch.New(engine.New(rules.Builtin()), cfg)
	t.Cleanup(svc.Close)
	return svc
}

func TestValidateReportCached(t *testing.T) {
	t.Run("second call within TTL performs zero engine invocations", func(t *testing.T) {
		svc := newService(t, batch.DefaultConfig())

		first := svc.ValidateReport(sampleReport("r1"), rules.ReportTypeAnnualFinancialReturn, sampleContext(), time.Minute)
		require.Equal(t, uint64(1), svc.Metrics().EngineCalls)

		second := svc.ValidateReport(sampleReport("r1"), rules.ReportTypeAnnualFinancialReturn, sampleContext(), time.Minute)
		assert.Equal(t, uint64(1), svc.Metrics().EngineCalls, "cache hit must not invoke the engine")
		assert.Same(t, first, second)
		assert.Equal(t, uint64(1), svc.CacheStats().Reports.Hits)
	})

	t.Run("expired entries trigger recomputation", func(t *testing.T) {
		svc := newService(t, batch.DefaultConfig())

		svc.ValidateReport(sampleReport("r1"), rules.ReportTypeAnnualFinancialReturn, sampleContext(), 20*time.Millisecond)
		time.Sleep(40 * time.Millisecond)
		svc.ValidateReport(sampleReport("r1"), rules.ReportTypeAnnualFinancialReturn, sampleContext(), 20*time.Millisecond)

		assert.Equal(t, uint64(2), svc.Metrics().EngineCalls)
	})

	t.Run("different content misses", func(t *testing.T) {
		svc := newService(t, batch.DefaultConfig())

		svc.ValidateReport(sampleReport("r1"), rules.ReportTypeAnnualFinancialReturn, sampleContext(), time.Minute)

		changed := sampleReport("r1")
		changed.Sections[1].Data["totalAssets"] = "50000000.01"
		svc.ValidateReport(changed, rules.ReportTypeAnnualFinancialReturn, sampleContext(), time.Minute)

		assert.Equal(t, uint64(2), svc.Metrics().EngineCalls)
	})

	t.Run("clear empties the caches", func(t *testing.T) {
		svc := newService(t, batch.DefaultConfig())

		svc.ValidateReport(sampleReport("r1"), rules.ReportTypeAnnualFinancialReturn, sampleContext(), time.Minute)
		svc.Clear()
		svc.ValidateReport(sampleReport("r1"), rules.ReportTypeAnnualFinancialReturn, sampleContext(), time.Minute)

		assert.Equal(t, uint64(2), svc.Metrics().EngineCalls)
	})
}

func TestValidateFieldCached(t *testing.T) {
	svc := newService(t, batch.DefaultConfig())

	out := svc.ValidateField("balanceSheet.totalAssets", "123.45", rules.ReportTypeAnnualFinancialReturn, sampleContext(), time.Minute)
	require.True(t, out.Valid)
	require.Equal(t, uint64(1), svc.Metrics().EngineCalls)

	again := svc.ValidateField("balanceSheet.totalAssets", "123.45", rules.ReportTypeAnnualFinancialReturn, sampleContext(), time.Minute)
	assert.Equal(t, out, again)
	assert.Equal(t, uint64(1), svc.Metrics().EngineCalls)

	bad := svc.ValidateField("balanceSheet.totalAssets", "nope", rules.ReportTypeAnnualFinancialReturn, sampleContext(), time.Minute)
	assert.False(t, bad.Valid)
	assert.Equal(t, vrr.CodeNumberPattern, bad.Code)
	assert.Equal(t, uint64(2), svc.Metrics().EngineCalls)
}

func TestEnqueue(t *testing.T) {
	t.Run("higher priority drains first, ties in insertion order", func(t *testing.T) {
		// A slow custom rule keeps the drain loop busy on a blocker
		// request while the contested requests are queued behind it.
		var mu sync.Mutex
		var order []string

		slow, err := rules.NewRuleSet("slow-report", []rules.FieldRule{
			{
				FieldPath: "s.marker",
				FieldName: "Marker",
				DataType:  vrr.DataTypeText,
				Required:  true,
				Validator: func(raw any) vrr.Outcome {
					time.Sleep(20 * time.Millisecond)
					s, _ := raw.(string)
					mu.Lock()
					order = append(order, s)
					mu.Unlock()
					return vrr.Text(100, 0, "")(raw)
				},
			},
		}, nil)
		require.NoError(t, err)

		reg, err := rules.NewRegistry(slow)
		require.NoError(t, err)

		cfg := batch.DefaultConfig()
		cfg.GroupSize = 1
		cfg.ChunkSize = 1
		cfg.GroupDelay = time.Millisecond

		svc := batch.New(engine.New(reg), cfg)
		t.Cleanup(svc.Close)

		enqueue := func(marker string, priority int) {
			svc.Enqueue(batch.Request{
				ReportID: marker,
				Report: engine.Report{
					ID:   marker,
					Type: "slow-report",
					Sections: []engine.Section{
						{ID: "s", Data: map[string]any{"marker": marker}},
					},
				},
				ReportType: "slow-report",
				Context:    &rules.Context{ReportType: "slow-report"},
				Priority:   priority,
			})
		}

		enqueue("blocker", 100)
		enqueue("p1", 1)
		enqueue("p5", 5)
		enqueue("p3", 3)

		// Wait for everything to drain.
		require.Eventually(t, func() bool {
			return svc.Metrics().Processed == 4 && svc.Metrics().QueueDepth == 0
		}, 2*time.Second, 10*time.Millisecond)

		mu.Lock()
		defer mu.Unlock()
		require.Len(t, order, 4)
		assert.Equal(t, []string{"p5", "p3", "p1"}, order[1:], "queued requests drain by priority")
	})

	t.Run("futures resolve with the validation result", func(t *testing.T) {
		svc := newService(t, batch.DefaultConfig())

		f := svc.Enqueue(batch.Request{
			ReportID:   "r1",
			Report:     sampleReport("r1"),
			ReportType: rules.ReportTypeAnnualFinancialReturn,
			Context:    sampleContext(),
			Priority:   5,
		})

		res, err := f.Await()
		require.NoError(t, err)
		assert.True(t, res.Valid)
	})

	t.Run("cached requests resolve without queuing", func(t *testing.T) {
		svc := newService(t, batch.DefaultConfig())

		cached := svc.ValidateReport(sampleReport("r1"), rules.ReportTypeAnnualFinancialReturn, sampleContext(), time.Minute)

		f := svc.Enqueue(batch.Request{
			ReportID:   "r1",
			Report:     sampleReport("r1"),
			ReportType: rules.ReportTypeAnnualFinancialReturn,
			Context:    sampleContext(),
			Priority:   1,
		})

		require.True(t, f.IsComplete())
		res, err := f.Await()
		require.NoError(t, err)
		assert.Same(t, cached, res)
		assert.Equal(t, uint64(1), svc.Metrics().EngineCalls)
		assert.Zero(t, svc.Metrics().QueueDepth)
	})

	t.Run("equal priorities keep insertion order", func(t *testing.T) {
		svc := newService(t, batch.DefaultConfig())

		fa := svc.Enqueue(batch.Request{ReportID: "a", Report: sampleReport("a"), ReportType: rules.ReportTypeAnnualFinancialReturn, Context: sampleContext(), Priority: 2})
		fb := svc.Enqueue(batch.Request{ReportID: "b", Report: sampleReport("b"), ReportType: rules.ReportTypeAnnualFinancialReturn, Context: sampleContext(), Priority: 2})

		ra, err := fa.Await()
		require.NoError(t, err)
		rb, err := fb.Await()
		require.NoError(t, err)
		assert.True(t, ra.Valid)
		assert.True(t, rb.Valid)
	})

	t.Run("close fails futures still queued", func(t *testing.T) {
		block, err := rules.NewRuleSet("block-report", []rules.FieldRule{
			{
				FieldPath: "s.marker",
				DataType:  vrr.DataTypeText,
				Required:  true,
				Validator: func(raw any) vrr.Outcome {
					time.Sleep(100 * time.Millisecond)
					return vrr.Text(100, 0, "")(raw)
				},
			},
		}, nil)
		require.NoError(t, err)
		reg, err := rules.NewRegistry(block)
		require.NoError(t, err)

		cfg := batch.DefaultConfig()
		cfg.GroupSize = 1
		cfg.ChunkSize = 1

		svc := batch.New(engine.New(reg), cfg)

		mk := func(id string) batch.Request {
			return batch.Request{
				ReportID:   id,
				Report:     engine.Report{ID: id, Type: "block-report", Sections: []engine.Section{{ID: "s", Data: map[string]any{"marker": id}}}},
				ReportType: "block-report",
				Context:    &rules.Context{ReportType: "block-report"},
			}
		}

		first := svc.Enqueue(mk("in-flight"))
		queued := svc.Enqueue(mk("still-queued"))

		// Give the drain loop time to start the in-flight request, then
		// cancel while the second is still queued.
		time.Sleep(20 * time.Millisecond)
		svc.Close()

		res, err := first.Await()
		require.NoError(t, err, "in-flight work runs to completion")
		assert.NotNil(t, res)

		_, err = queued.Await()
		assert.Error(t, err, "queued work fails with the context error")
	})
}

func TestFromEnv(t *testing.T) {
	t.Setenv("REGVAL_BATCH_GROUP_SIZE", "3")
	t.Setenv("REGVAL_CACHE_TTL", "90s")

	cfg, err := batch.FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.GroupSize)
	assert.Equal(t, 90*time.Second, cfg.DefaultTTL)
	assert.Equal(t, 4, cfg.ChunkSize, "unset variables keep defaults")
}
