// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package posix provides helpers that behave the same on [POSIX] systems and Windows,
// currently the executable name shown in command usage strings.
//
// [POSIX]: https://grokipedia.com/page/POSIX
package posix
