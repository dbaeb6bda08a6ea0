package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is applied at startup. Statements are idempotent so a restart
// against an existing database is a no-op.
const Schema = `
create table if not exists users (
    id uuid primary key default gen_random_uuid(),
    external_uid text not null unique,
    email text,
    display_name text,
    created_at timestamptz not null default now(),
    updated_at timestamptz not null default now()
);

create table if not exists projects (
    id bigint generated always as identity primary key,
    public_id text not null unique,
    user_id uuid not null references users(id) on delete cascade,
    name text not null,
    furniture_type text not null default '',
    created_at timestamptz not null default now(),
    updated_at timestamptz not null default now()
);

create index if not exists idx_projects_user on projects(user_id);

create table if not exists project_images (
    id bigint generated always as identity primary key,
    project_id bigint not null references projects(id) on delete cascade,
    url text not null,
    filename text not null,
    content_type text not null,
    size_bytes bigint not null,
    width int not null,
    height int not null,
    created_at timestamptz not null default now()
);

create index if not exists idx_project_images_project on project_images(project_id);

create table if not exists color_regions (
    id bigint generated always as identity primary key,
    project_id bigint not null references projects(id) on delete cascade,
    name text not null,
    color_hex text not null,
    shape_kind text not null,
    geometry jsonb not null default '{}'::jsonb,
    opacity real not null default 1.0,
    blend_mode text not null default 'multiply',
    created_at timestamptz not null default now(),
    updated_at timestamptz not null default now()
);

create index if not exists idx_color_regions_project on color_regions(project_id);

create table if not exists canvas_states (
    id bigint generated always as identity primary key,
    project_id bigint not null unique references projects(id) on delete cascade,
    state jsonb not null,
    zoom real not null default 1.0,
    updated_at timestamptz not null default now()
);

create table if not exists recent_colors (
    id bigint generated always as identity primary key,
    user_id uuid not null references users(id) on delete cascade,
    color_hex text not null,
    used_at timestamptz not null default now(),
    unique (user_id, color_hex)
);

create index if not exists idx_recent_colors_user on recent_colors(user_id, used_at desc);
`

// Migrate applies the schema against the pool.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
