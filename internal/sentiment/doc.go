// Package sentiment provides an HTTP client for the conversation sentiment service.
//
// # Overview
//
// The service is an external collaborator with a two-endpoint contract:
//
//	GET  {base}/health   2xx means available
//	POST {base}/predict  {"conversation": [...]} -> {"results": [{"text", "sentiment"}]}
//
// Failed predictions may carry a FastAPI-style {"detail": ...} payload, either a
// plain string or a list of validation objects with "msg" fields.
//
// # Architecture
//
//   - client.go: HTTP client and request/response handling
//   - types.go: wire payloads mirroring the service schema
//   - errors.go: typed errors callers classify with errors.Is / errors.As
//   - split.go: conversion of raw conversation text into a sentence list
//
// # Client Usage
//
//	client, err := sentiment.NewClient("http://127.0.0.1:8000")
//	if err != nil {
//		return err
//	}
//	if err := client.Health(ctx); err != nil {
//		// service unavailable
//	}
//	results, err := client.Predict(ctx, sentiment.SplitConversation(text))
//
// # Error Handling
//
//   - ErrNoBaseURL: the base URL was never configured; every call fails with it
//   - *NetworkError: no response was received (dial failure, timeout, cancel)
//   - *StatusError: the service answered with a non-2xx status
//   - ErrMalformedResponse: a 2xx response whose body does not match the contract
//
// The client makes exactly one attempt per call. Retrying is the caller's
// decision.
package sentiment
