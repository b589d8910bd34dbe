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
			metricPrefixOpt := WithMetricPrefix("test-prefix")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			metricsEnabledOpt := WithMetricsEnabled(true)
			refreshIntervalOpt := WithRefreshInterval(5 * time.Second)
			customLabelsOpt := WithCustomLabels(map[string]string{"env": "test"})

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(metricPrefixOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
				So(refreshIntervalOpt, ShouldNotBeNil)
				So(customLabelsOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithMetricPrefix("test-prefix"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithRefreshInterval(10*time.Second),
				WithCustomLabels(map[string]string{"env": "test", "version": "1.0"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with empty overrides", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithMetricPrefix(""),
				WithHistogramBuckets(nil),
				WithCustomLabels(nil),
				WithRefreshInterval(0),
				WithPrometheusRegistry(registry),
			)

			Convey("Then defaults should survive", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "rondo")
				So(manager.subsystem, ShouldEqual, "balancer")
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given metrics recording", t, func() {
		Convey("When recording solve metrics", func() {
			Convey("Then it should record successes with duration", func() {
				So(func() {
					RecordSolveSuccess(12.5)
					RecordSolveSuccess(40.0)
				}, ShouldNotPanic)
			})

			Convey("And it should record failures by reason", func() {
				So(func() {
					RecordSolveFailure("roster_too_small")
					RecordSolveFailure("no_feasible_solution")
					RecordSolveFailure("timeout")
				}, ShouldNotPanic)
			})

			Convey("And it should record roster and bench sizes", func() {
				So(func() {
					RecordRosterSize(6)
					RecordRosterSize(22)
					RecordBenchSize(0)
					RecordBenchSize(4)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording strategy metrics", func() {
			Convey("Then it should record builds and durations", func() {
				So(func() {
					RecordStrategyBuild("position_draft", 1.2)
					RecordStrategyBuild("snake_draft", 0.4)
					RecordStrategyBuild("balanced_hybrid", 2.1)
				}, ShouldNotPanic)
			})

			Convey("And it should record failures and wins", func() {
				So(func() {
					RecordStrategyFailure("position_draft")
					RecordStrategyWin("balanced_hybrid")
				}, ShouldNotPanic)
			})

			Convey("And it should record refine iterations", func() {
				So(func() {
					RecordRefineIterations("snake_draft", 0)
					RecordRefineIterations("position_draft", 12)
					RecordRefineIterations("balanced_hybrid", 50)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording quality metrics", func() {
			Convey("Then it should publish the last score and gap", func() {
				So(func() {
					RecordFinalScore(215.5, 2)
					RecordFinalScore(0, 0)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording cache metrics", func() {
			Convey("Then hits and misses should not panic", func() {
				So(func() {
					RecordCacheHit()
					RecordCacheMiss()
					RecordCacheMiss()
				}, ShouldNotPanic)
			})
		})

		Convey("When recording validation metrics", func() {
			Convey("Then both outcomes should be accepted", func() {
				So(func() {
					RecordValidation(true)
					RecordValidation(false)
				}, ShouldNotPanic)
			})
		})

		Convey("When tracking in-flight solves", func() {
			Convey("Then the gauge should move both directions", func() {
				So(func() {
					IncActiveSolves()
					IncActiveSolves()
					DecActiveSolves()
					DecActiveSolves()
				}, ShouldNotPanic)
			})
		})

		Convey("When recording HTTP metrics", func() {
			Convey("Then it should record HTTP requests", func() {
				So(func() {
					RecordHTTPRequest("/api/solve", "POST", "200")
					RecordHTTPRequest("/api/validate", "POST", "200")
					RecordHTTPRequest("/api/health", "GET", "200")
				}, ShouldNotPanic)
			})

			Convey("And it should record HTTP request duration", func() {
				So(func() {
					RecordHTTPRequestDuration("/api/solve", "POST", "200", 25.0)
					RecordHTTPRequestDuration("/api/health", "GET", "200", 1.0)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording error metrics", func() {
			Convey("Then it should accept all label combinations", func() {
				So(func() {
					RecordErrorByComponent("engine", "strategy_panic")
					RecordErrorByType("client_error", "medium")
					RecordErrorByType("server_error", "high")
					RecordErrorByEndpoint("/api/solve", "POST", "client_error")
					RecordErrorLatency("http", "server_error", 12.5)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording system metrics", func() {
			Convey("Then it should update memory and goroutines", func() {
				So(func() {
					UpdateSystemMemoryUsage(1024 * 1024 * 100)
					UpdateSystemGoroutineCount(42)
				}, ShouldNotPanic)
			})
		})
	})
}

func TestMetricsEdgeCases(t *testing.T) {
	Convey("Given metrics edge cases", t, func() {
		Convey("When recording metrics with edge values", func() {
			Convey("And using zero values", func() {
				So(func() {
					RecordSolveSuccess(0.0)
					RecordRosterSize(0)
					RecordBenchSize(0)
					RecordRefineIterations("snake_draft", 0)
					RecordHTTPRequestDuration("/test", "GET", "200", 0.0)
				}, ShouldNotPanic)
			})

			Convey("And using very large values", func() {
				So(func() {
					RecordSolveSuccess(30000.0)
					RecordRosterSize(1000000)
					RecordFinalScore(1e9, 1e6)
				}, ShouldNotPanic)
			})

			Convey("And using empty strings", func() {
				So(func() {
					RecordSolveFailure("")
					RecordStrategyBuild("", 1.0)
					RecordHTTPRequest("", "", "200")
				}, ShouldNotPanic)
			})

			Convey("And using special characters in labels", func() {
				So(func() {
					RecordHTTPRequest("/api/solve?seed=42", "POST", "200")
					RecordStrategyFailure("strategy-with-dash")
					RecordSolveFailure("reason.with.dots")
				}, ShouldNotPanic)
			})
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given metrics concurrency", t, func() {
		Convey("When recording metrics concurrently", func() {
			done := make(chan bool, 10)

			// Start multiple goroutines recording metrics
			for i := 0; i < 10; i++ {
				go func(id int) {
					for j := 0; j < 100; j++ {
						RecordSolveSuccess(float64(j))
						RecordRosterSize(6 + j%20)
						RecordStrategyBuild("snake_draft", float64(j))
						RecordHTTPRequest("/api/solve", "POST", "200")
					}
					done <- true
				}(i)
			}

			// Wait for all goroutines to complete
			for i := 0; i < 10; i++ {
				<-done
			}

			Convey("Then it should handle concurrent access without panics", func() {
				So(true, ShouldBeTrue) // If we get here, no panics occurred
			})
		})
	})
}

func TestMetricsRegistry(t *testing.T) {
	Convey("Given the package registry", t, func() {
		Convey("When fetching it", func() {
			registry := GetRegistry()

			Convey("Then it should gather the balancer families", func() {
				So(registry, ShouldNotBeNil)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}
