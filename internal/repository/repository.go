// Package repository provides CRUD access to the user and bike collections.
// All methods classify their failures with errdefs sentinels so the handlers
// can translate them uniformly.
package repository

import "time"

const storeTimeout = 5 * time.Second
