// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package gc provides reusable byte buffer pooling to reduce garbage collection overhead.
// It abstracts the [bytebufferpool] library behind a small interface and offers
// helpers for reading keystore files and encoding structured log lines without
// allocating a fresh buffer per call.
//
// [bytebufferpool]: https://github.com/valyala/bytebufferpool
package gc
