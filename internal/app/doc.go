// Package app implements the application services behind the REST API and
// the analysis worker. Services orchestrate domain entities, repositories
// and external connectors without knowing about HTTP or AMQP.
package app
