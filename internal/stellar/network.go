package stellar

import "go.uber.org/zap"

// Network passphrases recognized by the dashboard.
const (
	PassphraseTestnet    = "Test SDF Network ; September 2015"
	PassphraseFuturenet  = "Test SDF Future Network ; October 2022"
	PassphraseStandalone = "Standalone Network ; February 2017"
	PassphrasePublic     = "Public Global Stellar Network ; September 2015"
)

type Network string

const (
	NetworkTestnet    Network = "testnet"
	NetworkFuturenet  Network = "futurenet"
	NetworkStandalone Network = "standalone"
	NetworkPublic     Network = "public"
)

// ResolveNetwork maps a configured passphrase to a network. An empty or
// unknown passphrase falls back to testnet.
func ResolveNetwork(passphrase string, log *zap.Logger) Network {
	switch passphrase {
	case "", PassphraseTestnet:
		return NetworkTestnet
	case PassphraseFuturenet:
		return NetworkFuturenet
	case PassphraseStandalone:
		return NetworkStandalone
	case PassphrasePublic:
		return NetworkPublic
	default:
		log.Warn("unknown network passphrase, defaulting to testnet",
			zap.String("passphrase", passphrase))
		return NetworkTestnet
	}
}

func (n Network) Passphrase() string {
	switch n {
	case NetworkFuturenet:
		return PassphraseFuturenet
	case NetworkStandalone:
		return PassphraseStandalone
	case NetworkPublic:
		return PassphrasePublic
	default:
		return PassphraseTestnet
	}
}
