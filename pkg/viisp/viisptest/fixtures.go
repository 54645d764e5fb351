// pkg/viisp/viisptest/fixtures.go
// Package viisptest provides shared signing fixtures for tests. The bundle
// is a self-signed throwaway pair encoded with the same legacy PKCS#12
// ciphers production bundles use; it protects nothing.
package viisptest

import (
	"testing"

	"viispgw/pkg/viisp"
)

// Passphrase unlocks Bundle.
const Passphrase = "changeit"

// Bundle is a base64-encoded PKCS#12 bundle holding a 2048-bit RSA key and
// its self-signed certificate.
const Bundle = "" +
	"MIIJsQIBAzCCCXcGCSqGSIb3DQEHAaCCCWgEgglkMIIJYDCCBBcGCSqGSIb3DQEHBqCCBAgwggQE" +
	"AgEAMIID/QYJKoZIhvcNAQcBMBwGCiqGSIb3DQEMAQYwDgQIpV8u/CBRjioCAggAgIID0MINXwSb" +
	"L7Cotei9CqixKCrp1+R+7f2TXuCvC8VT6VGRG7botuJqLKoU5k9yY4ucKI9g5MpxJDLbiKZoZ3gB" +
	"XaqcOFw04WjcOn6h9VxtOTFlgiHuHykMVPDVngL6LtvitPfk2ZvNOgIhOLTuRRqz2arSDrSVBBvO" +
	"UOB5bDzBgglWkroljcgj5l5Rtrqjb6TSdYkDVNd+PqZkKBB4LwV1u9aAWdYW0htjm5JY99E9BAT/" +
	"jzvcTpDUWCzElRvFcOfBplaHsWKbG/7OlfU4sgZueLB4TCOI/hzm78imtwT33vcZMQ0SokGak+kB" +
	"5fWjzURbFMFOu3mL74kGo0rbebj+oJIa2zEu5N+ZX+ghsITQ9O2qs3GoIxa2JUf71y9mE0ftytDk" +
	"XR71sZ+r9WaiMlaHNzDzFot04PTqRDLrjOpBZYtuiCIi8rb5e0vyJXyhSZOpV5UJPSjWQwcQ6mY3" +
	"gy2PPoyJTGX9ZOlcfah7f6go+oK9ISjDuKWWnikCmFc3l8yQx3V2v7EPDZwFb2u/KvXSmEsInYXx" +
	"d1Fgevc7pllalox24xj2sPeDVLNFZ49EIXdvaEAjGg1YeiP1HyJcJhEof2TJMSBwqoFv3uQyAaCv" +
	"VRQusn+pfGiwgNKC+Y7VXLoS8R4QPGnn27i7af/38WBZqlONaTQR+b2gQ1RzEVbYyhpKxE8Bn/0n" +
	"80htPQch0oR8MGktNTBbQsbXnXihe63bpWy3hJ5DtKgOI1QG+dqNbkXT4eRJVlt42CfkkKpLiXOv" +
	"DkzMZSLJfsHgIsHettD375VaiszlihYJav2cOuK5FQcgzqn1S1aRT+nw2kBaxdbni/ewUY0WhLbn" +
	"ZcFCBL0fKJ/8IKvX2qA6J11Sc3ChapAP6p3m7XyTdUEq4AOFz4v5qSGZb2WVtlZGGJKU7Et6HM5k" +
	"E6I/9qYGz3NLfJHwEiRIcwexTfVrK8ZsClVkorFpo8G0ALzo67fKN+SF0mm+jMzWLyPBxzK2FzUf" +
	"w04c/rKVFZ4XMsl97swuzC7EdslMWwSA+zlhKZecY15qMiGDfHJ+XGf3itG0A6AK+7Ts4IbrIDTu" +
	"3Jf+jjAMjGjie1CRjqLyENtqWSKcgATOHli4/KvSq3TL7kpgHmF3SUTCDooL6C7gCbMCPyikiakn" +
	"FPGdPi7xJA1cIvqNfzIyFCP029uDrktkb8wg3MNjTi001Jy7KiNkRBWtLErDLyCyUyrsYRaU9miM" +
	"c4BE0ELAkZZtpxrPltQh03d7MRgSEZE4ZQhj2Ae4GhMytb/ew9P8ihWvLc9yh7JHEcCV4PGlVKt4" +
	"gYMwggVBBgkqhkiG9w0BBwGgggUyBIIFLjCCBSowggUmBgsqhkiG9w0BDAoBAqCCBO4wggTqMBwG" +
	"CiqGSIb3DQEMAQMwDgQIaDKDOwwmENcCAggABIIEyFr9NbUucg2pbpn1XpYTz+zypIwUBttkC1mc" +
	"KOq65kmVkKDnH5ei1N10SlotGxhewDELJ9gPcRqxGH3GKcq/TweAmoVF0yF8Zl2303N/g0H5VBzW" +
	"qafMFqyH4DRZDZinDsF5nzvI00BRWkJi+lbH7pHyHvTDO7z9oUyIbyf5L3OlZk9t0r/MRMkctGAA" +
	"E08Yq9T1iYmARrGsZZacRvi3WADgtIZPEJ6CciOtFg5Fwzgc4SWXS/Eeh2eD2fTSYLrYYrxIPuB5" +
	"0A7xNikNI/6/hbqqwFSLl7agWvcKFsb8/ywe3PBKdLGAH0GwQTfZuolEb14vACYmZBlP8W6qnfZH" +
	"VxssqL53FE2K1aFmv1Oq5VhMVXccLht+KjojT7cEJQz3BCg3VPHLHDH0DhQyAJHgdv55ZfKYqKTg" +
	"oGk9Wl3IT+BiPawqDMizZ6mBkzvRqxw7m0GKeBXRiI6hxW3gi4E6aQX3Sw/KHnhSrMoHYWaYyMKD" +
	"m4+2THGM1NHSFt3Flrj6e2Sd9kGWTN4N/8GWQHGQY0OYYHhcH+JIXUnAAROsfbyGGhkD01RrN5yj" +
	"dNKFADTZfv7+GQo0i12p8poKCGkBw5ro8lcVQ5VyRinVVthDuDr6snZ8G0eiXhD2lDDyCE5rmhR2" +
	"/F/zhLkRQshtoeTQfTEyrurjJymSW+g4Y4W63+xVXxC1Yqbl/ro0Ee8xXw6b5kV59QqUK/1QN0i8" +
	"/rrtGtNjLv1QfDeY3arXjf581I2TytVh7CpKC+BesM6HuYvGpbpoAHoyaJkbyFgjnNrb7f98pdIt" +
	"eZa1YbzuURoAesnOF5SZuUPEiSFsLR0II2cXX6aFmvknuNu9cCpby6X4Fy1bIY8N6xpPZ6RMjg5C" +
	"EWt8+5KJgRzBEpJ/xf147CpkHyAydX35HDhPs7G0LCOekHkEbrTyAQf1wRAFoSqoWrcZjwfebwPc" +
	"1TACJU1T9DcuWfaMPdJVjtJx9srbEJd0h8Y5hU3AhBICRPCOcg+u7vxc15xnx8rMG8H0TI7dx0yu" +
	"Ia2fPbQVus52Rxodx38/PyPOadwZI2X8wd0+7HapvGUrpGZHJA6LgEamfuB04VD5ZCVBFXMchzXV" +
	"tlcBaAnaIk3EWeNX40tC/klNQyZhgaOlZa3Aw/BjRCRbrvpd1qA+jRHEH9MNvRYxi7pf0MlYVAzm" +
	"DVKnhUOvWx7v3nUVC7jA7WFLvl4gXP38Rkm6vRafocaP313jG8okMnc5uhEdzXA9mEhMHAnYLR2g" +
	"W+NBMiKIkv8M6Sf7ZlNZfyyNEKAwPExO99owDiyUNKTGOc+BVTwwWOVUvMGKAJ730UeTxqbBmu18" +
	"+T6PESRNZpqUnL1c3ueTr6XkdC0MVdhlCl2MxfQAgvJ6PpKogEPzL/8LhJQ3HGjIDeZjO31AXJW3" +
	"hfkaTl/30Gh0yz0g/oWLksCv0M1J/l/QJvz5r3dRSDVn0FOxM29qHyqNX/lbf/vu3d+vjhHw49eR" +
	"rEiW8b3fqhTP38UO+R3XEbF5TgdtdxbIz/KIPOmdXl3sqV9t2OldIIrQ04vcKPLQibfM+cFs7bxL" +
	"w6ZJe9si4c7R6re6CpfHyQHR95zYeF/yLHkYHlOgnyk88y0YtbytJFcTloExDAz9uJpt30fbRzCS" +
	"NDElMCMGCSqGSIb3DQEJFTEWBBRgUDUj+BkOlVbJ07eyOa21RD629DAxMCEwCQYFKw4DAhoFAAQU" +
	"9/5TEgPcijewANhOmniYCxsDf0sECAJljRmsOGh9AgIIAA=="

// NewSigner builds a Signer from the fixture bundle.
func NewSigner(t *testing.T) *viisp.Signer {
	t.Helper()
	s, err := viisp.NewSigner(Bundle, Passphrase)
	if err != nil {
		t.Fatalf("fixture signer: %v", err)
	}
	return s
}
