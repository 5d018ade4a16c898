// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

/*
Package metrics defines the Prometheus metrics exported at /metrics.

All collectors register with the default registry through promauto.

# Available Metrics

Activity log:
  - recipebox_activity_writes_total{kind, result}
  - recipebox_log_users

Recommendations:
  - recipebox_recommendation_requests_total{mode}
  - recipebox_recommendation_duration_seconds{mode}
  - recipebox_recommendation_results{mode}

Storage:
  - recipebox_storage_operation_duration_seconds{backend, operation}
  - recipebox_storage_breaker_state{name}

HTTP API:
  - recipebox_api_requests_total{method, route, status}
  - recipebox_api_request_duration_seconds{method, route}
  - recipebox_api_rate_limit_hits_total{route}

The route label is the chi route pattern, never the raw path, so user and
recipe IDs do not create new series.
*/
package metrics
