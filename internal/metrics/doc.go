// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

/*
Package metrics provides Prometheus metrics collection and export for trackrec.

trackrec is a batch tool rather than a server, so collectors are registered on
a package-level Registry and exported after a run with WriteTextfile, in the
format read by the node_exporter textfile collector:

	trackrec evaluate --metrics-out /var/lib/node_exporter/trackrec.prom

# Available Metrics

Recommendation:
  - trackrec_recommend_requests_total: Recommendation requests (counter)
    Labels: scorer, outcome (ok, error)
  - trackrec_recommend_duration_seconds: Scoring latency (histogram)
    Labels: scorer
  - trackrec_recommend_candidates: Candidates scored per request (histogram)
  - trackrec_cold_start_total: Requests served for users without history (counter)
    Labels: scorer
  - trackrec_cache_hits_total / trackrec_cache_misses_total: Result cache efficiency (counters)

Data:
  - trackrec_dataset_rows: Rows loaded per table (gauge)
    Labels: table
  - trackrec_dataset_load_duration_seconds: Load time per table (gauge)
    Labels: table

Evaluation:
  - trackrec_evaluation_users_total: Users by evaluation outcome (counter)
    Labels: scorer, outcome (evaluated, malformed, missing, failed)
  - trackrec_evaluation_metric: Aggregate ranking metric (gauge)
    Labels: scorer, metric, k ("all" for whole-list metrics)
*/
package metrics
