// Package main provides the entry point for the temple administration
// portal. It initializes and runs a web server using the Fiber framework
// that lets temple administrators manage the devotee registry, session
// schedule, donation ledger and kitchen inventory through a web interface.
// Collections are persisted in a key-value record store and a daily
// Bhagavad Gita quote is fetched from the Gemini API.
package main
