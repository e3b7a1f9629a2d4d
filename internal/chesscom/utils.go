package chesscom

import "strings"

// UnknownCountry is reported when a player's country cannot be determined.
const UnknownCountry = "?"

// DeriveSide determines which color username played in mg.
// If neither side matches, Color is Unmatched and the players are left empty.
func DeriveSide(username string, mg MonthlyGame) Side {
	switch {
	case strings.EqualFold(mg.White.Username, username):
		return Side{Color: White, Self: mg.White, Opponent: mg.Black}
	case strings.EqualFold(mg.Black.Username, username):
		return Side{Color: Black, Self: mg.Black, Opponent: mg.White}
	default:
		return Side{Color: Unmatched}
	}
}

// CountryCode extracts the code from a country endpoint URL such as
// https://api.chess.com/pub/country/US.
func CountryCode(countryURL string) string {
	countryURL = strings.TrimSuffix(strings.TrimSpace(countryURL), "/")
	if countryURL == "" {
		return UnknownCountry
	}
	if idx := strings.LastIndex(countryURL, "/"); idx >= 0 {
		countryURL = countryURL[idx+1:]
	}
	if countryURL == "" {
		return UnknownCountry
	}
	return countryURL
}
