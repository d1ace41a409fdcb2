// Package testsupport provides shared fixtures for package tests: temp-dir
// backed configs, file helpers, and opened stores and services that clean up
// after themselves.
package testsupport
