/*
Package metrics provides Prometheus instrumentation for the tracker.

Metrics are exposed at the /metrics endpoint in Prometheus text format.

Refresh metrics:
  - refresh_cycles_total: finished cycles (counter)
    Labels: source (live, local_cache, remote_mirror, static, empty)
  - refresh_failures_total: failed live fetches (counter)
    Labels: reason (rate_limited, unauthorized, malformed, upstream)
  - refresh_duration_seconds: cycle wall time (histogram)
  - consecutive_failures: current failure streak (gauge)
  - last_live_success_timestamp: last fetch that yielded data (gauge)

Snapshot metrics:
  - snapshot_entries: state vectors on screen (gauge)
  - snapshot_age_seconds: age of the rendered data, -1 when not applicable (gauge)

Mirror metrics:
  - mirror_pushes_total: snapshot pushes (counter)
    Labels: result (success, failure)

API metrics:
  - api_requests_total: requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: request latency (histogram)
    Labels: method, endpoint

WebSocket metrics:
  - websocket_connections: active connections (gauge)
  - websocket_messages_sent_total: broadcast messages (counter)

Lifecycle:
  - tracker_state: 0=stopped, 1=starting, 2=running, 3=stopping, 4=crashed (gauge)

All recording functions are safe for concurrent use; the Prometheus client
handles synchronization internally.
*/
package metrics
