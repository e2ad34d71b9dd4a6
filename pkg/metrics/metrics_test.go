package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			metricsEnabledOpt := WithMetricsEnabled(true)
			refreshIntervalOpt := WithRefreshInterval(5 * time.Second)

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
				So(refreshIntervalOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given a fresh registry", t, func() {
		registry := prometheus.NewRegistry()
		manager := NewManager(
			WithNamespace("test"),
			WithSubsystem("game"),
			WithPrometheusRegistry(registry),
		)

		Convey("Then the manager registers its metrics", func() {
			So(manager, ShouldNotBeNil)
			families, err := registry.Gather()
			So(err, ShouldBeNil)

			names := map[string]bool{}
			for _, f := range families {
				names[f.GetName()] = true
			}
			// Counters without observations do not gather; poke a few first.
			manager.spendTotal.Add(1)
			manager.saveLatency.Observe(1)
			families, err = registry.Gather()
			So(err, ShouldBeNil)
			names = map[string]bool{}
			for _, f := range families {
				names[f.GetName()] = true
			}
			So(names["test_game_spend_total"], ShouldBeTrue)
			So(names["test_game_save_latency_milliseconds"], ShouldBeTrue)
		})
	})
}

func TestRecordingHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then the recording helpers never panic", func() {
			So(func() {
				RecordTicketsPurchased("t01", 3)
				RecordTicketClaimed("t01")
				AddSpend(10)
				AddPayout(4)
				RecordTokensGranted(1)
				RecordBackstopConsumed()
				RecordLevelUp()
				UpdateVendorLevel(2)
				UpdateBadgeCount(5)
				UpdateBalances(50, 1)
				RecordSaveError()
				RecordSaveLatency(1.5)
				RecordEventPublished("ticket-claimed")
				RecordEventDropped("ticket-claimed")
				RecordHTTPRequest("/api/v1/state", "GET", "200")
				RecordHTTPRequestDuration("/api/v1/state", "GET", "200", 3.2)
			}, ShouldNotPanic)
		})

		Convey("Then negative amounts are ignored rather than panicking", func() {
			So(func() {
				AddSpend(-5)
				AddPayout(-5)
				RecordTokensGranted(-1)
			}, ShouldNotPanic)
		})

		Convey("Then the registry is exposed for the metrics endpoint", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
