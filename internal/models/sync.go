package models

// SyncMetadata describes the device and time of a remote snapshot upload.
type SyncMetadata struct {
	DeviceID   string `json:"deviceId"`
	LastUpdate string `json:"lastUpdate"`
	Version    string `json:"version"`
}

// RemoteSnapshot is the document exchanged with the remote sync endpoint.
type RemoteSnapshot struct {
	Scores   map[string]*StudentRecord `json:"scores"`
	Metadata SyncMetadata              `json:"metadata"`
}
