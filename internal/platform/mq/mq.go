// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package mq is a broker-agnostic message queue used to hand outgoing mail
// from the API process to the mail worker.
//
// Two backends are provided: a Redis list queue (default) and RabbitMQ.
package mq

import (
	"context"

	"github.com/taibuivan/lotmarket/pkg/uuid"
)

// Message represents a broker-agnostic payload delivered to subscribers.
type Message struct {
	ID         string            `json:"id"`
	Data       []byte            `json:"data"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Handler processes a message. Return an error to signal a retry/nack.
type Handler func(ctx context.Context, msg Message) error

// Backend defines the broker operations used by the app.
type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Subscribe(ctx context.Context, channel string, handler Handler) error
	Ping(ctx context.Context) error
	Close() error
}

// MQ wraps a backend with a stable API.
type MQ struct {
	backend Backend
}

// New constructs an MQ wrapper for the provided backend.
func New(backend Backend) *MQ {
	return &MQ{backend: backend}
}

// Publish sends a message to the named channel.
func (m *MQ) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	return m.backend.Publish(ctx, channel, data, attrs)
}

// Subscribe consumes messages from the named channel until ctx is cancelled.
func (m *MQ) Subscribe(ctx context.Context, channel string, handler Handler) error {
	return m.backend.Subscribe(ctx, channel, handler)
}

// Ping checks broker connectivity.
func (m *MQ) Ping(ctx context.Context) error {
	return m.backend.Ping(ctx)
}

// Close closes the underlying backend.
func (m *MQ) Close() error {
	return m.backend.Close()
}

func newMessageID() string {
	return uuid.New()
}
