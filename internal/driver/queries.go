package driver

// Stored groups use the entity layout: (:Entity {uuid, name, group_id})
// nodes joined by [:RELATES_TO] edges. Invalidated edges are skipped.
const (
	GetGroupNodesQuery = `
		MATCH (n:Entity {group_id: $group_id})
		RETURN n.uuid AS id, n.name AS label, n.entity_type AS type, n.community AS community
		ORDER BY n.created_at, n.uuid
	`

	GetGroupEdgesQuery = `
		MATCH (n:Entity {group_id: $group_id})-[e:RELATES_TO]->(m:Entity {group_id: $group_id})
		WHERE (e.invalid_at IS NULL OR e.invalid_at = "")
		RETURN n.uuid AS source, m.uuid AS target, e.polarity AS type, e.weight AS weight
		ORDER BY e.created_at, e.uuid
	`
)
