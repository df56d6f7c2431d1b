package connectors

import "strings"

// columnSynonyms lists, per canonical field, the header spellings accepted in
// CSV exports. Earlier spellings win.
var columnSynonyms = []fieldMapping{
	{FieldShotNumber, []string{"shot_number", "shot", "shot #", "shot_no", "#"}},
	{FieldClub, []string{"club", "club_name", "club name", "club type"}},

	{FieldCarryDistance, []string{"carry_distance", "carry", "carry_dist", "carry (m)", "carry (yds)"}},
	{FieldTotalDistance, []string{"total_distance", "total", "total_dist", "total (m)", "total (yds)"}},

	{FieldBallSpeed, []string{"ball_speed", "ball speed", "ball_spd", "ball spd (mph)", "ball spd"}},
	{FieldLaunchAngle, []string{"launch_angle", "launch", "launch_ang", "vla", "launch (deg)"}},
	{FieldSpinRate, []string{"spin_rate", "spin", "total spin", "spin (rpm)"}},
	{FieldSpinAxis, []string{"spin_axis", "spin axis", "axis", "spin axis (deg)"}},

	{FieldClubSpeed, []string{"club_speed", "club speed", "club_spd", "club spd (mph)"}},
	{FieldSmashFactor, []string{"smash_factor", "smash", "smash factor"}},
	{FieldAttackAngle, []string{"attack_angle", "attack", "aoa", "angle of attack"}},

	{FieldFaceAngle, []string{"face_angle", "face", "face angle", "face (deg)"}},
	{FieldFaceToPath, []string{"face_to_path", "face to path", "ftp", "face-to-path"}},

	{FieldOfflineDistance, []string{"offline_distance", "offline", "side", "side (m)", "side (yds)"}},
}

// ColumnMap maps a canonical field to the CSV header that carries it.
// Fields without a matching header are absent.
type ColumnMap map[string]string

// BuildColumnMap matches headers case-insensitively against the accepted
// spellings of each canonical field. When two headers collide after trimming
// and lower-casing, the first one is used.
func BuildColumnMap(headers []string) ColumnMap {
	byKey := make(map[string]string, len(headers))
	for _, h := range headers {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, seen := byKey[key]; !seen {
			byKey[key] = h
		}
	}

	columns := make(ColumnMap)
	for _, m := range columnSynonyms {
		for _, name := range m.keys {
			if header, ok := byKey[name]; ok {
				columns[m.field] = header
				break
			}
		}
	}
	return columns
}

// Unmapped returns the headers that no canonical field picked up, in input
// order.
func (m ColumnMap) Unmapped(headers []string) []string {
	used := make(map[string]bool, len(m))
	for _, h := range m {
		used[h] = true
	}

	var out []string
	for _, h := range headers {
		if !used[h] && strings.TrimSpace(h) != "" {
			out = append(out, h)
		}
	}
	return out
}
