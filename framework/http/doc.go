// Package http holds small JSON response helpers and the container
// inspection handler mounted by the application kernel.
package http
