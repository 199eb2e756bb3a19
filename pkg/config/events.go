package config

import "time"

type RequestEvent struct {
	ID         string
	Method     string
	Path       string
	RemoteAddr string

	Status       int
	Bytes        int64
	RequestBytes int64

	Duration time.Duration
}
