package transport

import "os"

// NewInMemoryPair returns two connected Transports, suitable for wiring a
// client Session directly to a server Session in the same process without
// a real wire. Grounded on internal/mcp/client_test.go's testPipe()
// helper, generalized from a one-off test fixture into a reusable
// transport pair used by mcptest and by unit tests across the module.
// Each direction is an OS pipe, whose kernel buffer lets Send return once
// the bytes are buffered, before the other end reads them.
func NewInMemoryPair() (a, b Transport) {
	aReader, bWriter, err := os.Pipe()
	if err != nil {
		panic("transport: in-memory pair: " + err.Error())
	}
	bReader, aWriter, err := os.Pipe()
	if err != nil {
		panic("transport: in-memory pair: " + err.Error())
	}

	a = NewStdio(aWriter, aReader)
	b = NewStdio(bWriter, bReader)
	return a, b
}
