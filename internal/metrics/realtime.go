package metrics

// SocketConnected increments the open-connection gauge
func (m *Metrics) SocketConnected() {
	m.safeExecute("SocketConnected", func() {
		m.RealtimeConnections.Inc()
	})
}

// SocketDisconnected decrements the open-connection gauge
func (m *Metrics) SocketDisconnected() {
	m.safeExecute("SocketDisconnected", func() {
		m.RealtimeConnections.Dec()
	})
}

// SetRealtimeRooms sets the number of board rooms with subscribers
func (m *Metrics) SetRealtimeRooms(count int) {
	m.safeExecute("SetRealtimeRooms", func() {
		m.RealtimeRooms.Set(float64(count))
	})
}

// RecordBroadcast counts one broadcast of the given event to a room
func (m *Metrics) RecordBroadcast(event string) {
	m.safeExecute("RecordBroadcast", func() {
		m.RealtimeBroadcastsTotal.WithLabelValues(event).Inc()
	})
}

// RecordDroppedClient counts a client disconnected for falling behind
func (m *Metrics) RecordDroppedClient() {
	m.safeExecute("RecordDroppedClient", func() {
		m.RealtimeDroppedClients.Inc()
	})
}
