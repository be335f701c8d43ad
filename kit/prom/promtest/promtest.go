// Package promtest provides helpers for extracting prometheus metrics in tests.
package promtest

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// MustGather calls g.Gather and calls tb.Fatal if there was an error.
func MustGather(tb testing.TB, g prometheus.Gatherer) []*dto.MetricFamily {
	tb.Helper()

	mfs, err := g.Gather()
	if err != nil {
		tb.Fatalf("error while gathering metrics: %v", err)
		return nil
	}
	return mfs
}

// MustFindMetric returns the first metric in the family called name whose
// labels equal labels. It calls tb.FailNow, after logging what was available,
// if no such metric exists.
func MustFindMetric(tb testing.TB, mfs []*dto.MetricFamily, name string, labels map[string]string) *dto.Metric {
	tb.Helper()

	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.Metric {
			if labelsMatch(m, labels) {
				return m
			}
		}
		tb.Logf("metric family %q has no metric with labels %v", name, labels)
		tb.FailNow()
		return nil
	}

	tb.Logf("metric family with name %q not found; available:", name)
	for _, mf := range mfs {
		tb.Logf("\t%s", mf.GetName())
	}
	tb.FailNow()
	return nil
}

func labelsMatch(m *dto.Metric, labels map[string]string) bool {
	if len(m.Label) != len(labels) {
		return false
	}
	for _, l := range m.Label {
		if v, ok := labels[l.GetName()]; !ok || v != l.GetValue() {
			return false
		}
	}
	return true
}
