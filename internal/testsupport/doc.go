// Package testsupport provides shared fixtures for texbridge tests: a fake
// conversion daemon served over httptest and configuration builders.
package testsupport
