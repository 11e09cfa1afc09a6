package constants

import "os"

func GetScoreDir() string {
	path := os.Getenv("MKI_DIR")
	if path != "" {
		return path
	}
	return "./out"
}

func GetMediaDir() string {
	path := os.Getenv("MEDIA_PATH")
	if path != "" {
		return path
	}

	panic("MEDIA_PATH environment variable is not set!")
}

func GetServeAddr() string {
	addr := os.Getenv("MKI_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}

// GetMetadataEndpoint is empty when no metadata table is configured.
func GetMetadataEndpoint() string {
	return os.Getenv("MKI_METADATA_ENDPOINT")
}

const FileExtension = ".mki"

const MetadataTable = "mki-metadata"

// notes kept by a sample
const SampleSize = 10

// used when a MIDI file carries no tempo event
const DefaultTempo = 120

// largest file the server will decode from a request body
const MaxUploadSize = 64 * 1024 * 1024
