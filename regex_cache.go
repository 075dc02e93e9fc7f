package csec

import "regexp"

// regexCacheKey builds the cache key for regex match results.
func regexCacheKey(re *regexp.Regexp, s string) GlobalKey {
	return GlobalKey{Kind: CacheKindRegex, Regex: re, Str: s}
}

// RegexMatchWithCache returns the result of re.MatchString(s), using GlobalCache
// to store previous results for improved performance on repeated lookups.
func RegexMatchWithCache(re *regexp.Regexp, s string) bool {
	key := regexCacheKey(re, s)
	if val, ok := GlobalCache.Get(key); ok {
		return val.(bool)
	}
	res := re.MatchString(s)
	GlobalCache.Add(key, res)
	return res
}
