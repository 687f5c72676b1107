package imgvault

// DecodeError reports that raw bytes could not be rasterized as an image.
// Fatal to fingerprint extraction; the engine never retries.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "imgvault: decode image: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// InvalidFingerprintError reports a malformed candidate fingerprint handed
// to the matcher. No comparison phase runs when this is returned.
type InvalidFingerprintError struct {
	Field  string
	Reason string
}

func (e *InvalidFingerprintError) Error() string {
	return "imgvault: invalid fingerprint: " + e.Field + ": " + e.Reason
}
