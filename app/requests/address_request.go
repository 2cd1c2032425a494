package requests

// ResolveAddressRequest request resolve địa chỉ đơn lẻ
type ResolveAddressRequest struct {
	Address string         `json:"address" binding:"required"` // Địa chỉ cần resolve
	Options ResolveOptions `json:"options,omitempty"`          // Tùy chọn resolve
}

// ResolveOptions tùy chọn resolve
type ResolveOptions struct {
	UseCache        bool `json:"use_cache,omitempty"`        // Có sử dụng cache không
	WithSuggestions bool `json:"with_suggestions,omitempty"` // Trả về gợi ý cho cấp chưa resolve
	TopK            int  `json:"top_k,omitempty"`            // Số gợi ý tối đa mỗi cấp
}

// BatchResolveRequest request resolve hàng loạt địa chỉ
type BatchResolveRequest struct {
	Addresses []string       `json:"addresses" binding:"required,min=1,max=20000"` // Danh sách địa chỉ (tối đa 20k)
	Options   ResolveOptions `json:"options,omitempty"`                            // Tùy chọn resolve
}

// SuggestRequest request gợi ý đơn vị hành chính cho địa chỉ khó
type SuggestRequest struct {
	Address string `json:"address" binding:"required"` // Địa chỉ cần gợi ý
	TopK    int    `json:"top_k,omitempty"`            // Số gợi ý tối đa mỗi cấp
}
