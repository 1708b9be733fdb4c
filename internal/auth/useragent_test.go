package auth

import "testing"

func TestClassifyUserAgent(t *testing.T) {
	cases := []struct {
		ua      string
		browser string
		os      string
		mobile  bool
	}{
		{
			ua:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
			browser: "Chrome", os: "Windows", mobile: false,
		},
		{
			ua:      "Mozilla/5.0 (iPhone; CPU iPhone OS 17_5 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.5 Mobile/15E148 Safari/604.1",
			browser: "Safari", os: "iOS", mobile: true,
		},
		{
			ua:      "Mozilla/5.0 (X11; Linux x86_64; rv:127.0) Gecko/20100101 Firefox/127.0",
			browser: "Firefox", os: "Linux", mobile: false,
		},
		{
			ua:      "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Mobile Safari/537.36",
			browser: "Chrome", os: "Android", mobile: true,
		},
		{
			ua:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36 Edg/126.0.0.0",
			browser: "Edge", os: "Windows", mobile: false,
		},
		{
			ua:      "curl/8.5.0",
			browser: "curl", os: "Unknown", mobile: false,
		},
		{
			ua:      "",
			browser: "Unknown", os: "Unknown", mobile: false,
		},
	}

	for _, tc := range cases {
		browser, osName, mobile := classifyUserAgent(tc.ua)
		if browser != tc.browser || osName != tc.os || mobile != tc.mobile {
			t.Errorf("classifyUserAgent(%.40q) = (%s, %s, %v), want (%s, %s, %v)",
				tc.ua, browser, osName, mobile, tc.browser, tc.os, tc.mobile)
		}
	}
}
