package concepts

import (
	"testing"

	"github.com/wxmet/mars2grib/dict"
	"github.com/wxmet/mars2grib/registry"
)

func TestStatisticsMatcherVariants(t *testing.T) {
	cases := []struct {
		paramID int64
		want    StatisticsType
	}{
		{7, StatisticsInstantaneous},
		{8, StatisticsAccumulation},
		{51, StatisticsAverage24h},
	}
	for _, c := range cases {
		mars := md(map[string]dict.Value{"paramId": dict.Int(c.paramID)})
		if got := statisticsMatcher(mars, empty()); got != int(c.want) {
			t.Errorf("statisticsMatcher(paramId=%d) = %d, want %d", c.paramID, got, c.want)
		}
	}
}

func TestStatisticsMatcherNoParamIdDisables(t *testing.T) {
	if got := statisticsMatcher(empty(), empty()); got != registry.MissingVariant {
		t.Errorf("statisticsMatcher(no paramId) = %d, want MissingVariant", got)
	}
}

func TestStatisticsOpAccumulation(t *testing.T) {
	out := dict.NewHandleDict(dict.NewInMemoryHandle(), nil)
	d := registry.Dicts{Mars: empty(), Geo: empty(), Par: empty(), Opt: empty()}
	if err := statisticsOp(registry.StagePreset, registry.Section4, int(StatisticsAccumulation), d, out); err != nil {
		t.Fatalf("statisticsOp: %v", err)
	}
	got, err := out.GetInt("typeOfStatisticalProcessing")
	if err != nil || got != 1 {
		t.Errorf("typeOfStatisticalProcessing = (%d, %v), want (1, nil)", got, err)
	}
}

func TestStatisticsOpAverage24h(t *testing.T) {
	out := dict.NewHandleDict(dict.NewInMemoryHandle(), nil)
	d := registry.Dicts{Mars: empty(), Geo: empty(), Par: empty(), Opt: empty()}
	if err := statisticsOp(registry.StagePreset, registry.Section4, int(StatisticsAverage24h), d, out); err != nil {
		t.Fatalf("statisticsOp: %v", err)
	}
	length, err := out.GetInt("lengthOfTimeRange")
	if err != nil || length != 24 {
		t.Errorf("lengthOfTimeRange = (%d, %v), want (24, nil)", length, err)
	}
}

func TestStatisticsOpInstantaneousWritesNothing(t *testing.T) {
	out := dict.NewHandleDict(dict.NewInMemoryHandle(), nil)
	d := registry.Dicts{Mars: empty(), Geo: empty(), Par: empty(), Opt: empty()}
	if err := statisticsOp(registry.StagePreset, registry.Section4, int(StatisticsInstantaneous), d, out); err != nil {
		t.Fatalf("statisticsOp: %v", err)
	}
	mem := out.Handle().(*dict.InMemoryHandle)
	if len(mem.Snapshot()) != 0 {
		t.Errorf("instantaneous statistics should write no keys, got %v", mem.Snapshot())
	}
}
