package finance

// SalesChannel identifies the sales channel a transaction originated from
type SalesChannel string

const (
	// SalesChannelShopify is the direct-to-consumer webshop
	SalesChannelShopify SalesChannel = "shopify"
	// SalesChannelEtsy is the Etsy marketplace storefront
	SalesChannelEtsy SalesChannel = "etsy"
	// SalesChannelWholesale is B2B wholesale revenue
	SalesChannelWholesale SalesChannel = "wholesale"
)

// IsValid checks if the channel is a valid SalesChannel
func (c SalesChannel) IsValid() bool {
	switch c {
	case SalesChannelShopify, SalesChannelEtsy, SalesChannelWholesale:
		return true
	}
	return false
}

// String returns the string representation of SalesChannel
func (c SalesChannel) String() string {
	return string(c)
}

// AllSalesChannels returns all valid sales channels
func AllSalesChannels() []SalesChannel {
	return []SalesChannel{
		SalesChannelShopify,
		SalesChannelEtsy,
		SalesChannelWholesale,
	}
}

// AdPlatform identifies an advertising platform spend is attributed to
type AdPlatform string

const (
	// AdPlatformMeta covers Facebook and Instagram ads
	AdPlatformMeta AdPlatform = "meta"
	// AdPlatformGoogle covers Google Ads
	AdPlatformGoogle AdPlatform = "google"
	// AdPlatformEtsyAds covers Etsy onsite ads
	AdPlatformEtsyAds AdPlatform = "etsy_ads"
)

// IsValid checks if the platform is a valid AdPlatform
func (p AdPlatform) IsValid() bool {
	switch p {
	case AdPlatformMeta, AdPlatformGoogle, AdPlatformEtsyAds:
		return true
	}
	return false
}

// String returns the string representation of AdPlatform
func (p AdPlatform) String() string {
	return string(p)
}

// AllAdPlatforms returns all valid ad platforms
func AllAdPlatforms() []AdPlatform {
	return []AdPlatform{
		AdPlatformMeta,
		AdPlatformGoogle,
		AdPlatformEtsyAds,
	}
}
