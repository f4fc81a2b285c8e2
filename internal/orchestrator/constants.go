package orchestrator

// Event channel buffer; slow presentation consumers drop events rather
// than stall the poll loop.
const eventBuffer = 64
