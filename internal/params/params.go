package params

const (
	// MaxIterations bounds every rejection loop: sampling, nonce redraws, and reader retries.
	MaxIterations = 255

	// ProtocolID names the threshold decryption protocol in logs and transcripts.
	ProtocolID = "ec-threshold/decrypt"

	// MinQuorum is the smallest number of partial decryptions the aggregate combiner accepts.
	MinQuorum = 2
)
