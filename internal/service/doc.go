// Package service contains the application's business logic, orchestrating
// the persistence stores and the optional listing cache.
package service
