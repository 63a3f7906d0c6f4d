package errors

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralBadRequestError represents a generic bad request error.
	GeneralBadRequestError ErrorCode = "general_bad_request_error"
	// GeneralNotFoundError represents a generic not found error.
	GeneralNotFoundError ErrorCode = "general_not_found_error"

	// EventLogOpenError represents a failure opening the event log file.
	EventLogOpenError ErrorCode = "event_log_open_error"
	// EventLogWriteError represents a failure writing an event log record.
	EventLogWriteError ErrorCode = "event_log_write_error"
	// EventLogLoadError represents a failure loading an event log file.
	EventLogLoadError ErrorCode = "event_log_load_error"

	// SnapshotEncodeError represents a failure encoding a depth snapshot.
	SnapshotEncodeError ErrorCode = "snapshot_encode_error"
	// SnapshotDecodeError represents a failure decoding a depth snapshot.
	SnapshotDecodeError ErrorCode = "snapshot_decode_error"
	// SnapshotStoreError represents a failure persisting a snapshot.
	SnapshotStoreError ErrorCode = "snapshot_store_error"
	// SnapshotLoadError represents a failure loading a snapshot.
	SnapshotLoadError ErrorCode = "snapshot_load_error"

	// TradePublishError represents a failure publishing a trade event.
	TradePublishError ErrorCode = "trade_publish_error"

	// RedisConfigError represents an invalid or nil Redis configuration.
	RedisConfigError ErrorCode = "redis_config_error"
	// RedisConnectionError represents a failure connecting to Redis.
	RedisConnectionError ErrorCode = "redis_connection_error"
	// RedisGetError represents a failure getting a value from Redis.
	RedisGetError ErrorCode = "redis_get_error"
	// RedisSetError represents a failure setting a value in Redis.
	RedisSetError ErrorCode = "redis_set_error"
	// RedisDelError represents a failure deleting a value from Redis.
	RedisDelError ErrorCode = "redis_del_error"

	// CSVParseError represents a malformed CSV order row.
	CSVParseError ErrorCode = "csv_parse_error"
)
