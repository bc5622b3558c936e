package mongo

import "errors"

var (
	ErrEmptyConnectionURL     = errors.New("mongo: empty connection URL")
	ErrEmptyDatabaseName      = errors.New("mongo: empty database name")
	ErrFailedToConnectToMongo = errors.New("mongo: failed to connect")
	ErrHealthcheckFailed      = errors.New("mongo: healthcheck failed")
)
