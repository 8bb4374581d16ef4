package pipeline

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestRouteAfterComplianceProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("every input combination routes somewhere", prop.ForAll(
		func(review, failed, pending bool) bool {
			switch routeAfterCompliance(review, failed, pending) {
			case routeNeedsReview, routeClaims, routeFinalize:
				return true
			default:
				return false
			}
		},
		gen.Bool(), gen.Bool(), gen.Bool(),
	))

	properties.Property("review flag dominates every other input", prop.ForAll(
		func(failed, pending bool) bool {
			return routeAfterCompliance(true, failed, pending) == routeNeedsReview
		},
		gen.Bool(), gen.Bool(),
	))

	properties.Property("compliance failure routes to review when unflagged", prop.ForAll(
		func(pending bool) bool {
			return routeAfterCompliance(false, true, pending) == routeNeedsReview
		},
		gen.Bool(),
	))

	properties.Property("claims branch taken exactly when clean with pending claims", prop.ForAll(
		func(review, failed, pending bool) bool {
			got := routeAfterCompliance(review, failed, pending)
			want := !review && !failed && pending
			return (got == routeClaims) == want
		},
		gen.Bool(), gen.Bool(), gen.Bool(),
	))

	properties.Property("finalize is the only remaining outcome", prop.ForAll(
		func(review, failed, pending bool) bool {
			got := routeAfterCompliance(review, failed, pending)
			want := !review && !failed && !pending
			return (got == routeFinalize) == want
		},
		gen.Bool(), gen.Bool(), gen.Bool(),
	))

	properties.TestingRun(t)
}
