package payroll_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go-hris-console/internal/payroll"

	"github.com/stretchr/testify/assert"
)

type fakeSalarySource struct {
	calls   int32
	records []payroll.SalaryStructure
	err     error
	delay   time.Duration
}

func (f *fakeSalarySource) ListSalaryStructures(ctx context.Context) ([]payroll.SalaryStructure, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func salaryFixtures() []payroll.SalaryStructure {
	return []payroll.SalaryStructure{
		{ID: 1, EmployeeID: 7, BaseSalary: 20000, EffectiveDate: "2024-01-01"},
		{ID: 2, EmployeeID: 7, BaseSalary: 25000, EffectiveDate: "2024-06-01"},
		{ID: 3, EmployeeID: 8, BaseSalary: 99000, EffectiveDate: "2023-01-01"},
	}
}

func runEnding(end string) *payroll.PayrollRun {
	return &payroll.PayrollRun{ID: 1, PeriodStart: "2024-05-01", PeriodEnd: end}
}

func TestSalaryStructureCache_BaseSalaryFor(t *testing.T) {
	ctx := context.Background()

	t.Run("picks latest effective record not after period end", func(t *testing.T) {
		cache := payroll.NewSalaryStructureCache(&fakeSalarySource{records: salaryFixtures()})

		may := cache.BaseSalaryFor(ctx, 7, runEnding("2024-05-31"))
		if assert.NotNil(t, may) {
			assert.Equal(t, 20000.0, *may)
		}

		july := cache.BaseSalaryFor(ctx, 7, runEnding("2024-07-31"))
		if assert.NotNil(t, july) {
			assert.Equal(t, 25000.0, *july)
		}
	})

	t.Run("never returns a record effective after period end", func(t *testing.T) {
		cache := payroll.NewSalaryStructureCache(&fakeSalarySource{records: salaryFixtures()})

		got := cache.BaseSalaryFor(ctx, 7, runEnding("2023-12-31"))
		assert.Nil(t, got)
	})

	t.Run("unknown period end disables the cut-off", func(t *testing.T) {
		cache := payroll.NewSalaryStructureCache(&fakeSalarySource{records: salaryFixtures()})

		got := cache.BaseSalaryFor(ctx, 7, nil)
		if assert.NotNil(t, got) {
			assert.Equal(t, 25000.0, *got)
		}

		got = cache.BaseSalaryFor(ctx, 7, runEnding("not-a-date"))
		if assert.NotNil(t, got) {
			assert.Equal(t, 25000.0, *got)
		}
	})

	t.Run("no records for employee", func(t *testing.T) {
		cache := payroll.NewSalaryStructureCache(&fakeSalarySource{records: salaryFixtures()})
		assert.Nil(t, cache.BaseSalaryFor(ctx, 99, runEnding("2024-05-31")))
	})

	t.Run("fetch failure yields nil and is not memoized", func(t *testing.T) {
		source := &fakeSalarySource{err: errors.New("HTTP 500: Internal Server Error")}
		cache := payroll.NewSalaryStructureCache(source)

		assert.Nil(t, cache.BaseSalaryFor(ctx, 7, runEnding("2024-05-31")))
		assert.False(t, cache.Loaded())

		source.err = nil
		source.records = salaryFixtures()

		got := cache.BaseSalaryFor(ctx, 7, runEnding("2024-05-31"))
		if assert.NotNil(t, got) {
			assert.Equal(t, 20000.0, *got)
		}
		assert.Equal(t, int32(2), atomic.LoadInt32(&source.calls))
	})

	t.Run("loads once and reloads after invalidate", func(t *testing.T) {
		source := &fakeSalarySource{records: salaryFixtures()}
		cache := payroll.NewSalaryStructureCache(source)

		cache.BaseSalaryFor(ctx, 7, runEnding("2024-05-31"))
		cache.BaseSalaryFor(ctx, 8, runEnding("2024-05-31"))
		assert.Equal(t, int32(1), atomic.LoadInt32(&source.calls))

		cache.Invalidate()
		assert.False(t, cache.Loaded())

		cache.BaseSalaryFor(ctx, 7, runEnding("2024-05-31"))
		assert.Equal(t, int32(2), atomic.LoadInt32(&source.calls))
	})

	t.Run("concurrent first callers share one fetch", func(t *testing.T) {
		source := &fakeSalarySource{records: salaryFixtures(), delay: 50 * time.Millisecond}
		cache := payroll.NewSalaryStructureCache(source)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				cache.BaseSalaryFor(ctx, 7, runEnding("2024-05-31"))
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), atomic.LoadInt32(&source.calls))
	})
}

func TestEffectiveSalaryStructure(t *testing.T) {
	end := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)

	t.Run("skips unparseable effective dates", func(t *testing.T) {
		records := []payroll.SalaryStructure{
			{ID: 1, EmployeeID: 7, BaseSalary: 18000, EffectiveDate: "2024-02-01"},
			{ID: 2, EmployeeID: 7, BaseSalary: 50000, EffectiveDate: "garbage"},
		}

		got := payroll.EffectiveSalaryStructure(records, 7, &end)
		if assert.NotNil(t, got) {
			assert.Equal(t, int64(1), got.ID)
		}
	})

	t.Run("record effective on period end is included", func(t *testing.T) {
		records := []payroll.SalaryStructure{
			{ID: 1, EmployeeID: 7, BaseSalary: 18000, EffectiveDate: "2024-02-01"},
			{ID: 2, EmployeeID: 7, BaseSalary: 21000, EffectiveDate: "2024-05-31"},
		}

		got := payroll.EffectiveSalaryStructure(records, 7, &end)
		if assert.NotNil(t, got) {
			assert.Equal(t, 21000.0, got.BaseSalary)
		}
	})

	t.Run("equal effective dates keep the first record", func(t *testing.T) {
		records := []payroll.SalaryStructure{
			{ID: 4, EmployeeID: 7, BaseSalary: 30000, EffectiveDate: "2024-03-01"},
			{ID: 5, EmployeeID: 7, BaseSalary: 31000, EffectiveDate: "2024-03-01"},
		}

		got := payroll.EffectiveSalaryStructure(records, 7, &end)
		if assert.NotNil(t, got) {
			assert.Equal(t, int64(4), got.ID)
		}
	})
}
