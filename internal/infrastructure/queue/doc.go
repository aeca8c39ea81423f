// Package queue connects the REST API and the analysis worker through a
// RabbitMQ exchange. The API publishes analysis requests, the worker
// consumes them.
package queue
