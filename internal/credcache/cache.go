package credcache

import (
	"context"
	"encoding/json"

	"github.com/starproof/dashboard-api/internal/models"
	"go.uber.org/zap"
)

const customizationKey = "credential_customization"

// Cache keeps the per-wallet, append-ordered list of issuance results,
// most recent first. Append is read-modify-write: two writers to the same
// address race and the last one wins. It grows without bound; there is no
// eviction and no TTL.
type Cache struct {
	kv  KV
	log *zap.Logger
}

func NewCache(kv KV, log *zap.Logger) *Cache {
	return &Cache{kv: kv, log: log}
}

func credentialsKey(walletAddress string) string {
	return "credentials_" + walletAddress
}

// Append prepends record to the list stored for the address and writes the
// whole list back.
func (c *Cache) Append(ctx context.Context, walletAddress string, record models.StoredCredential) error {
	existing, err := c.Load(ctx, walletAddress)
	if err != nil {
		return err
	}

	list := append([]models.StoredCredential{record}, existing...)
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.kv.Put(ctx, credentialsKey(walletAddress), data)
}

// Load returns the stored list for the address. A missing key or a value
// that fails to parse both read as an empty list; parse failures are logged,
// not surfaced.
func (c *Cache) Load(ctx context.Context, walletAddress string) ([]models.StoredCredential, error) {
	data, ok, err := c.kv.Get(ctx, credentialsKey(walletAddress))
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.StoredCredential{}, nil
	}

	var list []models.StoredCredential
	if err := json.Unmarshal(data, &list); err != nil {
		c.log.Warn("corrupt credential list, treating as empty",
			zap.String("wallet", walletAddress), zap.Error(err))
		return []models.StoredCredential{}, nil
	}
	if list == nil {
		list = []models.StoredCredential{}
	}
	return list, nil
}

// SaveCustomization stores the single shared presentation-preferences
// object; it is independent of any wallet address.
func (c *Cache) SaveCustomization(ctx context.Context, cust models.Customization) error {
	data, err := json.Marshal(cust)
	if err != nil {
		return err
	}
	return c.kv.Put(ctx, customizationKey, data)
}

// LoadCustomization returns the stored preferences, zero-valued when unset
// or unreadable.
func (c *Cache) LoadCustomization(ctx context.Context) (models.Customization, error) {
	var cust models.Customization
	data, ok, err := c.kv.Get(ctx, customizationKey)
	if err != nil {
		return cust, err
	}
	if !ok {
		return cust, nil
	}
	if err := json.Unmarshal(data, &cust); err != nil {
		c.log.Warn("corrupt customization preferences, treating as unset", zap.Error(err))
		return models.Customization{}, nil
	}
	return cust, nil
}
