package messages

// TimeSyncRequest is a clock probe sent by the client. The server echoes
// ClientTime back untouched so the client can measure round-trip time.
type TimeSyncRequest struct {
	ClientTime float64 // Client wall clock at send (Unix ms)
}

// TimeSyncResponse is the server's reply to a TimeSyncRequest, carrying the
// server clock at the moment the probe was received.
type TimeSyncResponse struct {
	ClientTime float64 // Echoed from the request
	ServerTime float64 // Server wall clock at receipt (Unix ms)
	ServerTick uint64  // Simulation tick at receipt
}
